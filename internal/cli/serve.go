package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/polynav/polynav/internal/server"
	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/httputil"
	"github.com/polynav/polynav/pkg/icd"
)

// searchCacheTTL bounds how long search responses are reused. Search
// results only change across releases, so a day is conservative.
const searchCacheTTL = 24 * time.Hour

// newServeCmd creates the serve command: run the HTTP API used by the
// browser frontend. The server works without a crawled dataset, serving
// entity and search lookups straight from the ICD API; graph endpoints
// return 503 until a dataset exists.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
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

			g, err := loadGraph(ctx, st)
			if err != nil {
				return err
			}
			if g == nil {
				logger.Warn("No dataset in store; graph endpoints will be unavailable")
			} else {
				logger.Infof("Loaded dataset: %d entities, %d edges", g.Len(), g.EdgeCount())
			}

			cache, err := httputil.NewCache("", searchCacheTTL)
			if err != nil {
				logger.Warn("search response cache disabled", "err", err)
			}
			client := icd.NewClient(cfg, st, cache, logger)
			srv := server.New(cfg, g, client, logger)

			printInfo("Listening on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")

	return cmd
}
