package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/automata-tools/deskagent/internal/engine"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/output"
	"github.com/automata-tools/deskagent/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// mcpServer exposes the automation engine over MCP. Tool calls are
// serialized: the injected-input device and foreground window are global
// resources, so two actions must never interleave.
type mcpServer struct {
	session  *session
	actionMu sync.Mutex
	mcp      *mcpserver.MCPServer
}

func newMCPServer(s *session) (*mcpServer, error) {
	srv := &mcpServer{session: s}
	srv.mcp = mcpserver.NewMCPServer(
		"deskagent",
		version.Version,
	)
	srv.registerTools()
	return srv, nil
}

func (s *mcpServer) serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("find_window",
			mcp.WithDescription("Locate an application window by fuzzy name match and report whether a debug endpoint is available"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application name (e.g. 'discord', 'chrome')")),
			mcp.WithNumber("timeout", mcp.Description("Seconds to poll for the window (0 fails immediately)")),
		),
		s.handleFindWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Bring an application window to the foreground"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
		),
		s.handleFocusWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Click a named element, trying debug protocol, accessibility tree, shortcuts and OCR in order"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
			mcp.WithString("element", mcp.Required(), mcp.Description("Human name of the element (e.g. 'Search')")),
		),
		s.handleClick,
	)

	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text into a named element. Brace tokens like {ENTER} are sent as key presses."),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
			mcp.WithString("element", mcp.Required(), mcp.Description("Human name of the target element")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to type")),
		),
		s.handleType,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_elements",
			mcp.WithDescription("Dump the window's accessibility tree as compact title/control-type/id triples"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
		),
		s.handleListElements,
	)

	s.mcp.AddTool(
		mcp.NewTool("verify",
			mcp.WithDescription("Check that text is visible in the window via OCR"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to look for")),
			mcp.WithNumber("timeout", mcp.Description("Seconds to keep polling (default 3)")),
		),
		s.handleVerify,
	)
}

// recordToText serializes a result record for the MCP response.
func recordToText(rec output.Record) string {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf(`{"success":%t}`, rec.Success)
	}
	return string(b)
}

func (s *mcpServer) handleFindWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := StringParam(params, "app", "")
	seconds := float64(IntParam(params, "timeout", int(defaultLocateTimeout.Seconds())))

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	win, id, err := s.session.resolveWindow(ctx, app, time.Duration(seconds*float64(time.Second)))
	if err != nil {
		return mcp.NewToolResultError(recordToText(output.Fail(err))), nil
	}
	rec := output.OK("found window %q (pid %d)", win.Title, win.PID).
		WithWindow(win).
		WithIdentity(id)
	return mcp.NewToolResultText(recordToText(rec)), nil
}

func (s *mcpServer) handleFocusWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := StringParam(request.GetArguments(), "app", "")

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	win, _, err := s.session.resolveWindow(ctx, app, defaultLocateTimeout)
	if err != nil {
		return mcp.NewToolResultError(recordToText(output.Fail(err))), nil
	}
	if s.session.provider.WindowManager == nil {
		return mcp.NewToolResultError("window management not available on this platform"), nil
	}
	if err := s.session.provider.WindowManager.Focus(win); err != nil {
		return mcp.NewToolResultError(recordToText(output.Fail(err))), nil
	}
	time.Sleep(s.session.cfg.FocusSettle.Duration)
	return mcp.NewToolResultText(recordToText(output.OK("focused window %q", win.Title).WithWindow(win))), nil
}

func (s *mcpServer) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	return s.routeIntent(ctx, model.Intent{
		App:     StringParam(params, "app", ""),
		Element: StringParam(params, "element", ""),
		Kind:    model.ActionClick,
	})
}

func (s *mcpServer) handleType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	return s.routeIntent(ctx, model.Intent{
		App:     StringParam(params, "app", ""),
		Element: StringParam(params, "element", ""),
		Kind:    model.ActionType,
		Text:    StringParam(params, "text", ""),
	})
}

func (s *mcpServer) routeIntent(ctx context.Context, intent model.Intent) (*mcp.CallToolResult, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	win, id, err := s.session.resolveWindow(ctx, intent.App, defaultLocateTimeout)
	if err != nil {
		return mcp.NewToolResultError(recordToText(output.Fail(err))), nil
	}

	router := engine.NewRouter(s.session.provider, s.session.cfg, s.session.log)
	result := router.Route(ctx, engine.Request{Win: win, Identity: id, Intent: intent})
	if !result.Success {
		rec := output.Record{Success: false, Error: result.Error}
		return mcp.NewToolResultError(recordToText(rec)), nil
	}

	rec := output.OK("%s %q in %q", pastTense(intent.Kind), intent.Element, intent.App).WithWindow(win)
	rec.Strategy = result.Strategy
	return mcp.NewToolResultText(recordToText(rec)), nil
}

func (s *mcpServer) handleListElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := StringParam(request.GetArguments(), "app", "")

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	win, id, err := s.session.resolveWindow(ctx, app, defaultLocateTimeout)
	if err != nil {
		return mcp.NewToolResultError(recordToText(output.Fail(err))), nil
	}
	if s.session.provider.Reader == nil {
		return mcp.NewToolResultError("accessibility reader not available on this platform"), nil
	}
	tree, err := s.session.provider.Reader.ReadElements(win)
	if err != nil {
		return mcp.NewToolResultError(recordToText(output.Fail(err))), nil
	}

	summaries := summarize(model.Flatten(tree))
	rec := output.OK("listed %d elements in %q", len(summaries), win.Title).
		WithWindow(win).
		WithIdentity(id)
	rec.Elements = summaries
	return mcp.NewToolResultText(recordToText(rec)), nil
}

func (s *mcpServer) handleVerify(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := StringParam(params, "app", "")
	text := StringParam(params, "text", "")
	seconds := IntParam(params, "timeout", 3)

	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	win, _, err := s.session.resolveWindow(ctx, app, defaultLocateTimeout)
	if err != nil {
		return mcp.NewToolResultError(recordToText(output.Fail(err))), nil
	}

	v := engine.NewVerifier(s.session.provider, s.session.cfg, s.session.log)
	found := v.Verify(ctx, win, text, time.Duration(seconds)*time.Second)
	if !found {
		rec := output.Record{Success: false, Error: fmt.Sprintf("text %q not visible in %q within %ds", text, win.Title, seconds)}
		return mcp.NewToolResultError(recordToText(rec)), nil
	}
	rec := output.OK("text %q visible in %q", text, win.Title).WithWindow(win)
	rec.Found = output.Bool(true)
	return mcp.NewToolResultText(recordToText(rec)), nil
}
