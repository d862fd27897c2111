package locate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/model"
)

type fakeWM struct {
	windows   []model.Window
	bindErrs  int
	bindCalls int
	listCalls int
}

func (f *fakeWM) ListWindows() ([]model.Window, error) {
	f.listCalls++
	return f.windows, nil
}

func (f *fakeWM) Bind(model.Window) error {
	f.bindCalls++
	if f.bindCalls <= f.bindErrs {
		return errors.New("window not ready")
	}
	return nil
}

func (f *fakeWM) Focus(model.Window) error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.WindowPollInterval = config.Duration{Duration: time.Millisecond}
	return cfg
}

func TestLocateNormalizedExactMatch(t *testing.T) {
	wm := &fakeWM{windows: []model.Window{
		{Title: "Untitled - Notepad", PID: 10},
		{Title: "WhatsApp", PID: 20},
	}}
	l := New(wm, fastConfig(), quietLogger())

	win, err := l.Locate(context.Background(), "What's App", 2*time.Second)
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if win.Title != "WhatsApp" {
		t.Fatalf("located %q, want WhatsApp", win.Title)
	}
}

func TestLocateIdempotent(t *testing.T) {
	wm := &fakeWM{windows: []model.Window{
		{Title: "Discord", Class: "Chrome_WidgetWin_1", PID: 7},
		{Title: "Terminal", PID: 8},
	}}
	l := New(wm, fastConfig(), quietLogger())

	first, err := l.Locate(context.Background(), "discord", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.Locate(context.Background(), "discord", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if first.Title != second.Title || first.Class != second.Class {
		t.Fatalf("locate not idempotent: %+v then %+v", first, second)
	}
}

func TestLocateZeroTimeoutFailsWithoutPolling(t *testing.T) {
	wm := &fakeWM{windows: []model.Window{{Title: "Discord"}}}
	l := New(wm, fastConfig(), quietLogger())

	_, err := l.Locate(context.Background(), "discord", 0)
	if !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("err = %v, want ErrWindowNotFound", err)
	}
	if wm.listCalls != 0 {
		t.Fatalf("enumerated %d times with zero timeout, want 0", wm.listCalls)
	}
}

func TestLocateBelowThresholdTimesOut(t *testing.T) {
	wm := &fakeWM{windows: []model.Window{{Title: "zzz"}}}
	l := New(wm, fastConfig(), quietLogger())

	_, err := l.Locate(context.Background(), "spreadsheet", 10*time.Millisecond)
	if !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("err = %v, want ErrWindowNotFound", err)
	}
}

func TestLocateRetriesAfterBindFailure(t *testing.T) {
	wm := &fakeWM{
		windows:  []model.Window{{Title: "Spotify Premium"}},
		bindErrs: 2,
	}
	l := New(wm, fastConfig(), quietLogger())

	win, err := l.Locate(context.Background(), "spotify", time.Second)
	if err != nil {
		t.Fatalf("Locate error after bind retries: %v", err)
	}
	if win.Title != "Spotify Premium" {
		t.Fatalf("located %q", win.Title)
	}
	if wm.bindCalls < 3 {
		t.Fatalf("bindCalls = %d, want at least 3", wm.bindCalls)
	}
}

func TestLocateScoresClassName(t *testing.T) {
	wm := &fakeWM{windows: []model.Window{
		{Title: "‎", Class: "Notepad++", PID: 3},
	}}
	l := New(wm, fastConfig(), quietLogger())

	win, err := l.Locate(context.Background(), "notepad", time.Second)
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if win.PID != 3 {
		t.Fatalf("located pid %d, want 3", win.PID)
	}
}
