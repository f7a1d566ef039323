package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Bersaelor/framecad"
	"github.com/Bersaelor/framecad/config"
	"github.com/Bersaelor/framecad/diag"
	"github.com/Bersaelor/framecad/store"
)

var (
	// Global flags
	configPath string
	logLevel   string
	cachePath  string
	lang       string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "framegen",
	Short: "Eyewear frame outline generator",
	Long: `Extract the parts of a coloured reference drawing of half an eyewear
frame and build the outline of the whole frame at any ordered size.

Examples:
  framegen extract --name aviator drawing.svg        # Cache the parts of a drawing
  framegen combine --size 20:52:42 <id>              # Build one size as JSON
  framegen combine --format dxf -o out/ drawing.svg  # Build DXF files directly
  framegen preview --step fullside <id>              # Render an intermediate step
  framegen parts list                                # List cached drawings`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "framegen.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "override the part cache location")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "language of warning texts")
}

// setup loads the configuration and installs the logger for every command.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if cachePath != "" {
		c.Cache.Path = cachePath
	}
	if err := c.Validate(); err != nil {
		return err
	}
	log, err := c.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	framecad.SetLogger(log)
	cfg = c
	return nil
}

func openStore() (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return store.Open(cfg.Cache.Path)
}

// printWarnings writes one localised line per warning.
func printWarnings(w io.Writer, warnings []diag.Warning) {
	tag := diag.MatchLanguage(lang)
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s: %s\n", warn.Severity, diag.Localize(warn, tag))
	}
}
