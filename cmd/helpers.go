package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/automata-tools/deskagent/internal/classify"
	"github.com/automata-tools/deskagent/internal/config"
	"github.com/automata-tools/deskagent/internal/locate"
	"github.com/automata-tools/deskagent/internal/logging"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/output"
	"github.com/automata-tools/deskagent/internal/platform"
	"github.com/spf13/cobra"
)

// session bundles everything a subcommand needs for one invocation.
type session struct {
	cfg      config.Config
	log      *slog.Logger
	provider *platform.Provider
	locator  *locate.Locator
}

// newSession loads the config, builds the logger and platform provider,
// and wires the window locator. Called once per subcommand invocation.
func newSession(cmd *cobra.Command) (*session, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	log := logging.New(verbose)

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		log:      log,
		provider: provider,
		locator:  locate.New(provider.WindowManager, cfg, log),
	}, nil
}

// resolveWindow locates the app's window and classifies it. timeout <= 0
// uses the configured default poll window, except for an explicit zero
// passed by the caller.
func (s *session) resolveWindow(ctx context.Context, app string, timeout time.Duration) (model.Window, model.Identity, error) {
	win, err := s.locator.Locate(ctx, app, timeout)
	if err != nil {
		return model.Window{}, model.Identity{}, err
	}
	id := classify.New(s.provider.Processes, s.cfg, s.log).Classify(ctx, win)
	return win, id, nil
}

// emit writes the result record to stdout, honoring --pretty.
func emit(cmd *cobra.Command, rec output.Record) error {
	pretty, _ := cmd.Flags().GetBool("pretty")
	return output.PrintJSON(rec, pretty)
}

// defaultLocateTimeout is how long window resolution polls when the
// subcommand takes no --timeout flag.
const defaultLocateTimeout = 10 * time.Second

// StringParam extracts a string parameter from MCP tool arguments.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// IntParam extracts an int parameter from MCP tool arguments. JSON numbers
// arrive as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// BoolParam extracts a bool parameter from MCP tool arguments.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
