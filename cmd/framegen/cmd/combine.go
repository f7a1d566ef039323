package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bersaelor/framecad/dxf"
	"github.com/Bersaelor/framecad/frame"
	"github.com/Bersaelor/framecad/preview"
)

var (
	sizes   []string
	format  string
	outDir  string
	stepArg string
	strict  bool
)

var combineCmd = &cobra.Command{
	Use:   "combine <id|drawing.svg>",
	Short: "Build whole frame outlines at ordered sizes",
	Long: `Scale the parts of a cached or given drawing to each ordered size, join
them and mirror the result into the outline of the whole frame.

Sizes are written as bridge:glassWidth:glassHeight in millimetres. Without
--size the drawing's reference size is built.

Examples:
  framegen combine --size 20:52:42 aviator-2024
  framegen combine --size 18:50:40 --size 20:52:42 --format dxf -o out/ drawing.svg
  framegen combine --step bridge\&Shape --format png -o debug/ drawing.svg
  framegen combine --strict -o out/ drawing.svg   # Fail on error warnings`,
	Args: cobra.ExactArgs(1),
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringArrayVarP(&sizes, "size", "s", nil, "ordered size bridge:width:height (repeatable)")
	combineCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, dxf or png")
	combineCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: stdout, single size only)")
	combineCmd.Flags().StringVar(&stepArg, "step", "", "stop after a pipeline step")
	combineCmd.Flags().BoolVar(&strict, "strict", false, "fail when a warning has error severity")
}

func runCombine(cmd *cobra.Command, args []string) error {
	step, err := frame.ParseStep(stepArg)
	if err != nil {
		return err
	}
	src, err := loadSource(args[0])
	if err != nil {
		return err
	}
	targets, err := parseSizes(sizes, src.reference)
	if err != nil {
		return err
	}
	if outDir == "" && len(targets) > 1 {
		return fmt.Errorf("%d sizes need an output directory", len(targets))
	}
	write, ext, err := writerFor(format)
	if err != nil {
		return err
	}

	opts := append(cfg.Options(), frame.WithStep(step))
	results, err := frame.CombineSizes(cmd.Context(), src.parts, src.reference, targets, opts...)
	if err != nil {
		return err
	}

	failed := 0
	for i, res := range results {
		if src.report(cmd.ErrOrStderr(), res).HasErrors() {
			failed++
		}
		if outDir == "" {
			if err := write(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			continue
		}
		path := filepath.Join(outDir, outputName(src.name, targets[i], ext))
		if err := writeFile(path, res, write); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if strict && failed > 0 {
		return fmt.Errorf("%d of %d sizes have errors", failed, len(results))
	}
	return nil
}

type resultWriter func(io.Writer, *frame.Result) error

func writerFor(format string) (resultWriter, string, error) {
	switch format {
	case "json":
		return func(w io.Writer, res *frame.Result) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}, "json", nil
	case "dxf":
		return func(w io.Writer, res *frame.Result) error {
			return dxf.Write(w, res.Model, cfg.Tolerance)
		}, "dxf", nil
	case "png":
		return func(w io.Writer, res *frame.Result) error {
			opts := preview.DefaultOptions()
			opts.Labels = true
			return preview.Encode(w, res.Model, opts)
		}, "png", nil
	}
	return nil, "", fmt.Errorf("unknown format %q (valid: json, dxf, png)", format)
}

func writeFile(path string, res *frame.Result, write resultWriter) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, res); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func outputName(name string, s frame.SizeParameters, ext string) string {
	return fmt.Sprintf("%s_%g-%g-%g.%s", name, s.BridgeSize, s.GlasWidth, s.GlasHeight, ext)
}

// parseSizes parses bridge:width:height triples. No sizes yields ref.
func parseSizes(args []string, ref frame.SizeParameters) ([]frame.SizeParameters, error) {
	if len(args) == 0 {
		return []frame.SizeParameters{ref}, nil
	}
	out := make([]frame.SizeParameters, 0, len(args))
	for _, arg := range args {
		fields := strings.Split(arg, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("size %q: want bridge:width:height", arg)
		}
		var v [3]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("size %q: %w", arg, err)
			}
			v[i] = x
		}
		s := frame.SizeParameters{BridgeSize: v[0], GlasWidth: v[1], GlasHeight: v[2]}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("size %q: %w", arg, err)
		}
		out = append(out, s)
	}
	return out, nil
}
