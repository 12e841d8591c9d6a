package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/foundation"
)

// datasetSummary aggregates the headline numbers of a crawled dataset.
type datasetSummary struct {
	total       int
	multiParent int
	leaves      int
	maxChildren int
	maxParents  int
	maxDesc     int
	maxDepth    int
	depthCounts []int // nodes per depth level, indexed by depth
}

func summarize(ds foundation.Dataset) datasetSummary {
	var s datasetSummary
	s.total = len(ds)
	for _, rec := range ds {
		if len(rec.Parents) > 1 {
			s.multiParent++
		}
		if len(rec.Children) == 0 {
			s.leaves++
		}
		if len(rec.Children) > s.maxChildren {
			s.maxChildren = len(rec.Children)
		}
		if len(rec.Parents) > s.maxParents {
			s.maxParents = len(rec.Parents)
		}
		if rec.DescendantCount > s.maxDesc {
			s.maxDesc = rec.DescendantCount
		}
		if rec.MaxDepth > s.maxDepth {
			s.maxDepth = rec.MaxDepth
		}
		for rec.Depth >= len(s.depthCounts) {
			s.depthCounts = append(s.depthCounts, 0)
		}
		s.depthCounts[rec.Depth]++
	}
	return s
}

// histogramWidth is the bar length of the most populated depth level.
const histogramWidth = 40

func printDepthHistogram(counts []int) {
	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	if peak == 0 {
		return
	}
	printNewline()
	for depth, c := range counts {
		bar := strings.Repeat("█", c*histogramWidth/peak)
		if bar == "" && c > 0 {
			bar = "▏"
		}
		printKeyValue(fmt.Sprintf("depth %d", depth), fmt.Sprintf("%-*s %d", histogramWidth, bar, c))
	}
}

// newStatsCmd creates the stats command: print a summary of the stored
// dataset, or of a dataset file when --file is given.
func newStatsCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a crawled dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var ds foundation.Dataset
			if file != "" {
				var err error
				if ds, err = foundation.ReadDatasetFile(file); err != nil {
					return err
				}
			} else {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				st, err := openStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer st.Close()

				data, ok, err := st.GetGraph(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no dataset found; run %q first", appName+" crawl")
				}
				if ds, err = foundation.ReadDataset(bytes.NewReader(data)); err != nil {
					return err
				}
			}

			s := summarize(ds)
			printKeyValue("entities", fmt.Sprintf("%d", s.total))
			printKeyValue("multi-parent", fmt.Sprintf("%d", s.multiParent))
			printKeyValue("leaves", fmt.Sprintf("%d", s.leaves))
			printKeyValue("max children", fmt.Sprintf("%d", s.maxChildren))
			printKeyValue("max parents", fmt.Sprintf("%d", s.maxParents))
			printKeyValue("max descendants", fmt.Sprintf("%d", s.maxDesc))
			printKeyValue("max depth", fmt.Sprintf("%d", s.maxDepth))
			printDepthHistogram(s.depthCounts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the dataset from a JSON file instead of the store")

	return cmd
}
