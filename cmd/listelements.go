package cmd

import (
	"fmt"

	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/output"
	"github.com/spf13/cobra"
)

// Output caps keep the record digestible for an agent: long labels carry
// no extra signal past the first few words, and trees routinely hold
// thousands of nodes.
const (
	maxFieldChars  = 60
	maxListEntries = 80
)

var listElementsCmd = &cobra.Command{
	Use:   "list_elements <app>",
	Short: "Dump the window's accessibility tree as compact triples",
	Args:  cobra.ExactArgs(1),
	RunE:  runListElements,
}

func init() {
	rootCmd.AddCommand(listElementsCmd)
}

func runListElements(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	win, id, err := s.resolveWindow(cmd.Context(), args[0], defaultLocateTimeout)
	if err != nil {
		return err
	}
	if s.provider.Reader == nil {
		return fmt.Errorf("accessibility reader not available on this platform")
	}
	tree, err := s.provider.Reader.ReadElements(win)
	if err != nil {
		return fmt.Errorf("read elements of %q: %w", win.Title, err)
	}

	summaries := summarize(model.Flatten(tree))
	rec := output.OK("listed %d elements in %q", len(summaries), win.Title).
		WithWindow(win).
		WithIdentity(id)
	rec.Elements = summaries
	return emit(cmd, rec)
}

// summarize flattens elements into capped title/role/id triples.
func summarize(flat []model.Element) []output.ElementSummary {
	if len(flat) > maxListEntries {
		flat = flat[:maxListEntries]
	}
	out := make([]output.ElementSummary, len(flat))
	for i, el := range flat {
		out[i] = output.ElementSummary{
			Title:       truncate(el.Title, maxFieldChars),
			ControlType: truncate(el.Role, maxFieldChars),
			AutoID:      truncate(el.AutoID, maxFieldChars),
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
