package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bersaelor/framecad/frame"
	"github.com/Bersaelor/framecad/preview"
)

var (
	previewOut    string
	previewSize   string
	previewStep   string
	previewScale  float64
	previewLabels bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <id|drawing.svg>",
	Short: "Render a pipeline step as PNG",
	Long: `Run the pipeline up to a step and render the geometry built so far,
one colour per part.

Steps: scaled_parts, chained_parts, bridge&Shape, bridge&Shape&Hinge,
fullside, final.

Examples:
  framegen preview drawing.svg
  framegen preview --step chained_parts --size 20:52:42 -o chained.png aviator-2024`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "preview.png", "output PNG file")
	previewCmd.Flags().StringVarP(&previewSize, "size", "s", "", "ordered size bridge:width:height (default: reference)")
	previewCmd.Flags().StringVar(&previewStep, "step", "final", "pipeline step to render")
	previewCmd.Flags().Float64Var(&previewScale, "scale", preview.DefaultOptions().Scale, "pixels per millimetre")
	previewCmd.Flags().BoolVar(&previewLabels, "labels", true, "label parts")
}

func runPreview(cmd *cobra.Command, args []string) error {
	step, err := frame.ParseStep(previewStep)
	if err != nil {
		return err
	}
	src, err := loadSource(args[0])
	if err != nil {
		return err
	}
	var sizeArgs []string
	if previewSize != "" {
		sizeArgs = []string{previewSize}
	}
	targets, err := parseSizes(sizeArgs, src.reference)
	if err != nil {
		return err
	}

	opts := append(cfg.Options(), frame.WithStep(step))
	res := frame.Combine(src.parts, targets[0], src.reference, opts...)
	src.report(cmd.ErrOrStderr(), res)

	f, err := os.Create(previewOut)
	if err != nil {
		return err
	}
	popts := preview.DefaultOptions()
	popts.Scale = previewScale
	popts.Labels = previewLabels
	if err := preview.Encode(f, res.Model, popts); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", previewOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), previewOut)
	return nil
}
