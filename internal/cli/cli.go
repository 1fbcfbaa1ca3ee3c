// Package cli implements the xui command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/xui/pkg/cache"
	"github.com/matzehuels/xui/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "xui"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A cache that cannot be
// opened is reported and replaced by a NullCache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.config.Cache.open(noCache)
	if err != nil {
		printWarning("Cache unavailable, continuing without it: %v", err)
		store = cache.NewNullCache()
	}
	ttl, err := c.config.Cache.ttl()
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, c.config.Cache.keyer(), c.Logger)
	runner.TTL = ttl
	return runner, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// sceneFlags are the load flags shared by every command that reads markup.
type sceneFlags struct {
	sheets []string
	noBase bool
	rawIDs bool
	width  float64
	height float64
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.sheets, "sheet", "s", nil, "stylesheet, repeatable; later sheets win")
	cmd.Flags().BoolVar(&f.noBase, "no-base", false, "skip the built-in utility classes")
	cmd.Flags().BoolVar(&f.rawIDs, "raw-ids", false, "use element paths as node ids")
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width (default from config, else 1920)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height (default from config, else 1080)")
}

// options reads the markup and stylesheets and merges the flags over the
// config file.
func (c *CLI) options(ctx context.Context, markupPath string, f *sceneFlags) (pipeline.Options, error) {
	markup, err := pipeline.ReadInput(markupPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	paths := append(append([]string{}, c.config.Styles.Base...), f.sheets...)
	sheets, err := pipeline.ReadInputs(paths)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Markup: markup,
		Sheets: sheets,
		NoBase: f.noBase || c.config.Styles.NoBase,
		RawIDs: f.rawIDs,
		Width:  firstPositive(f.width, c.config.Viewport.Width),
		Height: firstPositive(f.height, c.config.Viewport.Height),
		Logger: loggerFromContext(ctx),
	}
	opts.SetLayoutDefaults()
	return opts, nil
}

func firstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}
