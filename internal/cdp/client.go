// Package cdp is a minimal debug-protocol client: enough of the Chrome
// DevTools wire protocol to pick a page, query and click elements, fill
// fields, and press keys. The engine needs nothing more; anything heavier
// belongs to the substrate, not to us.
package cdp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Page describes one debuggable target as reported by the endpoint's HTTP
// side.
type Page struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// ListPages fetches the open targets from the endpoint.
func ListPages(ctx context.Context, host string, port int) ([]Page, error) {
	url := fmt.Sprintf("http://%s:%d/json/list", host, port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list pages: endpoint returned %s", resp.Status)
	}

	var pages []Page
	if err := json.NewDecoder(resp.Body).Decode(&pages); err != nil {
		return nil, fmt.Errorf("decode page list: %w", err)
	}
	return pages, nil
}

// PickPage selects the most relevant open page: the first real page with a
// non-empty title, else the first real page, else nothing.
func PickPage(pages []Page) (Page, bool) {
	var fallback Page
	haveFallback := false
	for _, p := range pages {
		if p.Type != "page" || p.WebSocketDebuggerURL == "" {
			continue
		}
		if p.Title != "" {
			return p, true
		}
		if !haveFallback {
			fallback = p
			haveFallback = true
		}
	}
	return fallback, haveFallback
}

// Client is one websocket session with a page. Calls are strictly
// sequential; the engine never issues concurrent protocol commands.
type Client struct {
	conn   *websocket.Conn
	nextID atomic.Int64
}

// Connect dials the page's debugger websocket.
func Connect(ctx context.Context, page Page) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, page.WebSocketDebuggerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial debugger %s: %w", page.WebSocketDebuggerURL, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return &Client{conn: conn}, nil
}

// Close tears down the session.
func (c *Client) Close() error {
	return c.conn.Close()
}

type request struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

type response struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Call performs one protocol round trip, skipping interleaved events, and
// returns the raw result. The context deadline bounds the whole exchange.
func (c *Client) Call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	id := c.nextID.Add(1)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(10 * time.Second)
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return nil, err
	}
	if err := c.conn.WriteJSON(request{ID: id, Method: method, Params: params}); err != nil {
		return nil, fmt.Errorf("%s: write: %w", method, err)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	for {
		var resp response
		if err := c.conn.ReadJSON(&resp); err != nil {
			return nil, fmt.Errorf("%s: read: %w", method, err)
		}
		if resp.ID != id {
			// Asynchronous event or stale reply; not ours.
			continue
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("%s: endpoint error %d: %s", method, resp.Error.Code, resp.Error.Message)
		}
		return resp.Result, nil
	}
}

// evalResult is the shape of Runtime.evaluate's returnByValue payload.
type evalResult struct {
	Result struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"result"`
	ExceptionDetails *struct {
		Text string `json:"text"`
	} `json:"exceptionDetails"`
}

// Eval runs a JavaScript expression in the page and unmarshals its
// by-value result into out (pass nil to discard).
func (c *Client) Eval(ctx context.Context, expression string, out any) error {
	raw, err := c.Call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    expression,
		"returnByValue": true,
	})
	if err != nil {
		return err
	}
	var res evalResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return fmt.Errorf("decode evaluate result: %w", err)
	}
	if res.ExceptionDetails != nil {
		return fmt.Errorf("page exception: %s", res.ExceptionDetails.Text)
	}
	if out == nil || res.Result.Value == nil {
		return nil
	}
	return json.Unmarshal(res.Result.Value, out)
}
