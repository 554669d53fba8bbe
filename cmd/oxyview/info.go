package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.gltf|model.glb>",
		Short: "Display asset information",
		Long:  "Display the vertex count, triangle count and bounding box of an asset after node transforms are applied.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInfo(out io.Writer, path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	summary, err := loader.NewLoader().Info(path)
	if err != nil {
		return err
	}

	ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
	size := [3]float32{
		summary.BoundsMax[0] - summary.BoundsMin[0],
		summary.BoundsMax[1] - summary.BoundsMin[1],
		summary.BoundsMax[2] - summary.BoundsMin[2],
	}

	fmt.Fprintf(out, "File:       %s\n", filepath.Base(path))
	fmt.Fprintf(out, "Format:     %s\n", ext)
	fmt.Fprintf(out, "Size:       %.2f KB\n", float64(stat.Size())/1024)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Vertices:   %d\n", summary.Vertices)
	fmt.Fprintf(out, "Triangles:  %d\n", summary.Triangles)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Bounds min: (%.3f, %.3f, %.3f)\n", summary.BoundsMin[0], summary.BoundsMin[1], summary.BoundsMin[2])
	fmt.Fprintf(out, "Bounds max: (%.3f, %.3f, %.3f)\n", summary.BoundsMax[0], summary.BoundsMax[1], summary.BoundsMax[2])
	fmt.Fprintf(out, "Extent:     %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	return nil
}
