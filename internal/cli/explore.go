package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/session"
)

// newExploreCmd creates the explore command: an interactive terminal
// explorer over the crawled hierarchy. Without an entity argument it
// resumes the previously saved session, falling back to the root.
func newExploreCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [entity-id]",
		Short: "Explore the hierarchy interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			g, err := requireGraph(ctx, st)
			if err != nil {
				return err
			}

			var sess session.Session
			switch {
			case len(args) == 1:
				if !g.Has(args[0]) {
					return fmt.Errorf("entity %q is not in the dataset", args[0])
				}
				sess = session.Start(g, args[0], logger)
			default:
				var resumed bool
				if sess, resumed = session.Resume(ctx, st, g, logger); resumed {
					logger.Debug("Resumed saved session", "focus", sess.FocusID)
				} else {
					sess = session.Start(g, g.Root(), logger)
				}
			}

			p := tea.NewProgram(NewExploreModel(sess), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("explorer: %w", err)
			}

			if m, ok := final.(ExploreModel); ok {
				m.Session.SaveHistory(ctx, st)
			}
			return nil
		},
	}

	return cmd
}
