package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/foundation"
	"github.com/polynav/polynav/pkg/neighborhood"
	"github.com/polynav/polynav/pkg/render"
)

// renderFormats is the set of supported output formats.
var renderFormats = map[string]bool{"dot": true, "svg": true, "pdf": true, "png": true}

// newRenderCmd creates the render command: build the default neighborhood
// around a focus entity and write it as a node-link diagram.
func newRenderCmd(configPath *string) *cobra.Command {
	var (
		output   string
		format   string
		file     string
		detailed bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "render <entity-id>",
		Short: "Render the neighborhood of an entity to a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			focusID := args[0]

			if !renderFormats[format] {
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", format)
			}

			var g *foundation.Graph
			if file != "" {
				ds, err := foundation.ReadDatasetFile(file)
				if err != nil {
					return err
				}
				g = foundation.New(ds)
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
				if g, err = requireGraph(ctx, st); err != nil {
					return err
				}
			}
			if !g.Has(focusID) {
				return fmt.Errorf("entity %q is not in the dataset", focusID)
			}

			b := neighborhood.Builder{Logger: logger}
			displayed := b.Build(g, focusID)
			sg := neighborhood.BuildSubgraph(g, displayed)
			logger.Debugf("Neighborhood of %s: %d nodes, %d edges", focusID, sg.Len(), len(sg.Edges()))

			dot := render.ToDOT(sg, focusID, render.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				svg, err := render.RenderSVG(dot)
				if err != nil {
					return err
				}
				data = svg
			case "pdf", "png":
				svg, err := render.RenderSVG(dot)
				if err != nil {
					return err
				}
				if format == "pdf" {
					data, err = render.ToPDF(svg)
				} else {
					data, err = render.ToPNG(svg, scale)
				}
				if err != nil {
					return err
				}
			}

			path := output
			if path == "" {
				path = focusID + "." + format
			} else if ext := strings.TrimPrefix(filepath.Ext(path), "."); !renderFormats[ext] {
				path += "." + format
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}

			printFile(path)
			printSuccess("Rendered neighborhood of %s (%d nodes)", focusID, sg.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <entity-id>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot, pdf, png")
	cmd.Flags().StringVar(&file, "file", "", "read the dataset from a JSON file instead of the store")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include depth and child counts in node labels")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "raster scale factor for PNG output")

	return cmd
}
