package cdp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// visibleProbe evaluates to true when the selector resolves to an element
// occupying screen space.
const visibleProbe = `(() => {
  const el = document.querySelector(%s);
  if (!el) return false;
  const r = el.getBoundingClientRect();
  return r.width > 0 && r.height > 0;
})()`

// IsVisible reports whether the selector currently matches a visible element.
func (c *Client) IsVisible(ctx context.Context, selector string) (bool, error) {
	var visible bool
	err := c.Eval(ctx, fmt.Sprintf(visibleProbe, jsString(selector)), &visible)
	return visible, err
}

// WaitVisible polls IsVisible until the element appears or the context
// deadline elapses.
func (c *Client) WaitVisible(ctx context.Context, selector string, interval time.Duration) (bool, error) {
	for {
		visible, err := c.IsVisible(ctx, selector)
		if err != nil {
			if ctx.Err() != nil {
				// Deadline elapsed mid-exchange; report a plain timeout.
				return false, nil
			}
			return false, err
		}
		if visible {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, nil
		case <-time.After(interval):
		}
	}
}

// Click dispatches a semantic click on the first element matching selector.
func (c *Client) Click(ctx context.Context, selector string) error {
	var clicked bool
	script := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return false;
  el.scrollIntoView({block: "center"});
  el.click();
  return true;
})()`, jsString(selector))
	if err := c.Eval(ctx, script, &clicked); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("selector %q matched nothing", selector)
	}
	return nil
}

// ClickByText clicks the first visible element whose text content equals the
// given text after trimming, or contains it when nothing matches exactly.
func (c *Client) ClickByText(ctx context.Context, text string) error {
	var clicked bool
	script := fmt.Sprintf(`(() => {
  const want = %s.trim().toLowerCase();
  const all = Array.from(document.querySelectorAll("a, button, [role], input, span, div"));
  const visible = all.filter(el => {
    const r = el.getBoundingClientRect();
    return r.width > 0 && r.height > 0;
  });
  let hit = visible.find(el => (el.innerText || el.value || "").trim().toLowerCase() === want);
  if (!hit) hit = visible.find(el => (el.innerText || el.value || "").toLowerCase().includes(want));
  if (!hit) return false;
  hit.scrollIntoView({block: "center"});
  hit.click();
  return true;
})()`, jsString(text))
	if err := c.Eval(ctx, script, &clicked); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("no visible element with text %q", text)
	}
	return nil
}

// Fill focuses the element matching selector and sets its content, firing
// the input events frameworks listen for.
func (c *Client) Fill(ctx context.Context, selector, text string) error {
	var filled bool
	script := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return false;
  el.focus();
  if (el.isContentEditable) {
    el.textContent = %s;
  } else {
    const setter = Object.getOwnPropertyDescriptor(Object.getPrototypeOf(el), "value");
    if (setter && setter.set) setter.set.call(el, %s); else el.value = %s;
  }
  el.dispatchEvent(new Event("input", {bubbles: true}));
  el.dispatchEvent(new Event("change", {bubbles: true}));
  return true;
})()`, jsString(selector), jsString(text), jsString(text), jsString(text))
	if err := c.Eval(ctx, script, &filled); err != nil {
		return err
	}
	if !filled {
		return fmt.Errorf("selector %q matched nothing", selector)
	}
	return nil
}

// keyDefinitions for the few raw keys the engine dispatches itself.
var keyDefinitions = map[string]struct {
	code    string
	keyCode int
}{
	"Enter":  {"Enter", 13},
	"Tab":    {"Tab", 9},
	"Escape": {"Escape", 27},
}

// PressKey dispatches a raw key press (down + up) to the page.
func (c *Client) PressKey(ctx context.Context, key string) error {
	def, ok := keyDefinitions[key]
	if !ok {
		return fmt.Errorf("unsupported key %q", key)
	}
	for _, kind := range []string{"rawKeyDown", "keyUp"} {
		_, err := c.Call(ctx, "Input.dispatchKeyEvent", map[string]any{
			"type":                  kind,
			"key":                   key,
			"code":                  def.code,
			"windowsVirtualKeyCode": def.keyCode,
			"nativeVirtualKeyCode":  def.keyCode,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// InsertText types text into whatever currently holds input focus.
func (c *Client) InsertText(ctx context.Context, text string) error {
	_, err := c.Call(ctx, "Input.insertText", map[string]any{"text": text})
	return err
}

// PageTitle returns the document title, for diagnostics.
func (c *Client) PageTitle(ctx context.Context) (string, error) {
	var title string
	if err := c.Eval(ctx, "document.title", &title); err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}
