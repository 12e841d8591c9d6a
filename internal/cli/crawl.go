package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/foundation"
	"github.com/polynav/polynav/pkg/icd"
)

// newCrawlCmd creates the crawl command: walk the entire Foundation
// hierarchy from the configured server and store the resulting dataset.
func newCrawlCmd(configPath *string) *cobra.Command {
	var (
		out         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the Foundation hierarchy into a local dataset",
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

			cr := icd.Crawler{
				Client:      icd.NewClient(cfg, st, nil, logger),
				Concurrency: concurrency,
				Logger:      logger,
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Crawling %s ...", cfg.ServerURL()))
			spinner.Start()

			ds, err := cr.Crawl(ctx)
			if err != nil {
				spinner.StopWithError("Crawl failed")
				return err
			}
			spinner.Stop()

			var buf bytes.Buffer
			if err := foundation.WriteDataset(ds, &buf); err != nil {
				return err
			}
			if err := st.PutGraph(ctx, buf.Bytes()); err != nil {
				return fmt.Errorf("store dataset: %w", err)
			}

			if out != "" {
				if err := foundation.WriteDatasetFile(ds, out); err != nil {
					return err
				}
				printFile(out)
			}

			printSuccess("Crawled %d entities", len(ds))
			printNextStep("Inspect the dataset", appName+" stats")
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "also write the dataset to a JSON file")
	cmd.Flags().IntVar(&concurrency, "concurrency", icd.DefaultCrawlConcurrency, "max concurrent requests")

	return cmd
}
