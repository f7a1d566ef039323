package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bersaelor/framecad/diag"
	"github.com/Bersaelor/framecad/frame"
	"github.com/Bersaelor/framecad/store"
)

var (
	extractName string
	extractID   string
)

var extractCmd = &cobra.Command{
	Use:   "extract <drawing.svg>",
	Short: "Extract the parts of a drawing into the cache",
	Long: `Split a coloured SVG drawing into bridge, shape, pad, hinge and lens
parts using the configured colour map and store them in the part cache.
The id printed on success is used by combine and preview.

Examples:
  framegen extract drawing.svg
  framegen extract --name aviator --id aviator-2024 drawing.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractName, "name", "", "display name (default: file name)")
	extractCmd.Flags().StringVar(&extractID, "id", "", "cache id (default: a new UUID)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	parts, warnings, err := extractFile(args[0])
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)
	if missing := parts.Missing(frame.Bridge, frame.Shape, frame.Pad); len(missing) > 0 {
		return fmt.Errorf("drawing %s has no %s", args[0], strings.Join(missing, ", "))
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	name := extractName
	if name == "" {
		name = drawingName(args[0])
	}
	e := &store.Entry{
		ID:        extractID,
		Name:      name,
		Reference: cfg.Reference,
		Parts:     parts,
		Warnings:  warnings,
	}
	if err := s.Save(e); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.ID, e.Name, strings.Join(parts.Names(), ","))
	return nil
}

func extractFile(path string) (frame.PartSet, []diag.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return frame.ExtractSVG(f, cfg.ColorMap, cfg.Options()...)
}

func drawingName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// source is a PartSet to combine, read from a drawing or the cache.
type source struct {
	name      string
	reference frame.SizeParameters
	parts     frame.PartSet
	// warnings were recorded when the parts were extracted.
	warnings []diag.Warning
}

// report merges the extraction warnings with those of res, stores them on
// res and prints them.
func (src *source) report(w io.Writer, res *frame.Result) *diag.Collector {
	c := &diag.Collector{}
	c.Merge(src.warnings)
	c.Merge(res.Warnings)
	res.Warnings = c.Warnings()
	printWarnings(w, res.Warnings)
	return c
}

// loadSource reads arg as an SVG drawing when it has an .svg extension and
// as a cache id otherwise.
func loadSource(arg string) (*source, error) {
	if strings.EqualFold(filepath.Ext(arg), ".svg") {
		parts, warnings, err := extractFile(arg)
		if err != nil {
			return nil, err
		}
		return &source{name: drawingName(arg), reference: cfg.Reference, parts: parts, warnings: warnings}, nil
	}

	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	e, err := s.Load(arg)
	if err != nil {
		return nil, err
	}
	name := e.Name
	if name == "" {
		name = e.ID
	}
	return &source{name: name, reference: e.Reference, parts: e.Parts, warnings: e.Warnings}, nil
}
