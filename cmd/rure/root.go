package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// errNoMatch is returned by commands that found nothing.
var errNoMatch = errors.New("no match")

var (
	verbose   bool
	colorMode string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "rure",
	Short: "Search text with coregex",
	Long: `rure compiles a pattern once and runs it over files or stdin.

It drives the same handle-based API that the librure C library exports, so
its output shows exactly what a C caller would see: byte offsets, capture
slots and the non-overlapping match sequence.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(escapeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	l, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return nil
}

// newLogger logs to stderr: everything from debug up with verbose,
// otherwise only warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// styles holds the color formatters for match output.
type styles struct {
	match    *color.Color
	group    *color.Color
	location *color.Color
	ruleID   *color.Color
}

// newStyles creates formatters; enabled=false yields plain text.
func newStyles(enabled bool) *styles {
	s := &styles{
		match:    color.New(color.Bold, color.FgRed),
		group:    color.New(color.FgYellow),
		location: color.New(color.FgGreen),
		ruleID:   color.New(color.Bold, color.FgHiBlue),
	}

	if !enabled {
		s.match.DisableColor()
		s.group.DisableColor()
		s.location.DisableColor()
		s.ruleID.DisableColor()
	} else {
		s.match.EnableColor()
		s.group.EnableColor()
		s.location.EnableColor()
		s.ruleID.EnableColor()
	}

	return s
}

// colorEnabled resolves --color for the writer w.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && f == os.Stdout && !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (want auto, always or never)", mode)
	}
}

// readInput returns the contents of the file named by args[i], or stdin when
// args has no such element or it is "-".
func readInput(cmd *cobra.Command, args []string, i int) (string, []byte, error) {
	if i >= len(args) || args[i] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return "(stdin)", data, nil
	}
	data, err := os.ReadFile(args[i])
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %s: %w", args[i], err)
	}
	return args[i], data, nil
}
