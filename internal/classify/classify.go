// Package classify decides which high-fidelity substrate, if any, a located
// window exposes, and discovers its debug endpoint.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/fuzzy"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/platform"
)

// knownHighFidelityApps are executable identifiers of applications that ship
// a structured-document substrate. Matched after the same normalization used
// for element names.
var knownHighFidelityApps = []string{
	"chrome", "chromium", "msedge", "brave", "electron",
	"discord", "slack", "teams", "code", "vscodium",
	"spotify", "whatsapp", "signal", "obsidian", "notion", "figma",
}

// classMarkers are OS window-class fragments that indicate a Chromium-family
// renderer regardless of the executable name.
var classMarkers = []string{"chrome_widgetwin"}

// Classifier computes a window's Identity.
type Classifier struct {
	procs platform.ProcessInspector
	cfg   config.Config
	log   *slog.Logger

	// dial and endpointLive are swappable for tests.
	dial         func(host string, port int, timeout time.Duration) bool
	endpointLive func(host string, port int, timeout time.Duration) bool
}

// New returns a Classifier over the given process inspector.
func New(procs platform.ProcessInspector, cfg config.Config, log *slog.Logger) *Classifier {
	return &Classifier{
		procs:        procs,
		cfg:          cfg,
		log:          log,
		dial:         dialPort,
		endpointLive: probeEndpoint,
	}
}

// Classify derives the window's identity. Absence of an endpoint is not an
// error: callers treat it as "high-fidelity tier unavailable".
func (c *Classifier) Classify(ctx context.Context, win model.Window) model.Identity {
	if !c.eligible(win) {
		return model.Identity{}
	}

	id := model.Identity{HighFidelity: true}
	if port, ok := c.discoverEndpoint(ctx, win); ok {
		id.DebugHost = "127.0.0.1"
		id.DebugPort = port
	}
	return id
}

// eligible checks the owning executable against the allow-list, then the
// window class against the substrate markers.
func (c *Classifier) eligible(win model.Window) bool {
	if c.procs != nil && win.PID > 0 {
		if exe, err := c.procs.ExecutableName(win.PID); err == nil {
			norm := fuzzy.Normalize(strings.TrimSuffix(exe, ".exe"))
			for _, known := range knownHighFidelityApps {
				if strings.Contains(norm, known) {
					return true
				}
			}
		} else {
			c.log.Debug("executable lookup failed", "pid", win.PID, "error", err)
		}
	}

	class := fuzzy.Normalize(win.Class)
	for _, marker := range classMarkers {
		if strings.Contains(class, fuzzy.Normalize(marker)) {
			return true
		}
	}
	return false
}

// discoverEndpoint finds a live debug port, preferring ports actually owned
// by the window's process tree over a blind linear probe.
func (c *Classifier) discoverEndpoint(ctx context.Context, win model.Window) (int, bool) {
	timeout := c.cfg.DebugDialTimeout.Duration

	if c.procs != nil && win.PID > 0 {
		if pids, err := c.procs.TreePIDs(win.PID); err == nil {
			ports, err := c.procs.ListeningPorts(pids)
			if err == nil {
				for _, port := range ports {
					if port < c.cfg.DebugPortMin || port > c.cfg.DebugPortMax {
						continue
					}
					if ctx.Err() != nil {
						return 0, false
					}
					if c.endpointLive("127.0.0.1", port, timeout) {
						c.log.Debug("debug endpoint via process tree", "port", port)
						return port, true
					}
				}
			}
		}
	}

	for port := c.cfg.DebugPortMin; port <= c.cfg.DebugPortMax; port++ {
		if ctx.Err() != nil {
			return 0, false
		}
		if !c.dial("127.0.0.1", port, timeout) {
			continue
		}
		if c.endpointLive("127.0.0.1", port, timeout) {
			c.log.Debug("debug endpoint via port probe", "port", port)
			return port, true
		}
	}
	return 0, false
}

func dialPort(host string, port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", host, port), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// probeEndpoint confirms the port speaks the debug protocol's HTTP side.
func probeEndpoint(host string, port int, timeout time.Duration) bool {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(fmt.Sprintf("http://%s:%d/json/version", host, port))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
