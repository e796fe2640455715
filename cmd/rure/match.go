package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	capi "github.com/coregx/coregex-capi"
)

var (
	matchStart int
	matchQuiet bool
)

var matchCmd = &cobra.Command{
	Use:   "match PATTERN [FILE]",
	Short: "Report whether a pattern matches",
	Long: `Compile PATTERN and test it against FILE (or stdin).

Prints "match" or "no match"; the exit status is 1 when nothing matched.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().IntVar(&matchStart, "start", 0, "Byte offset to start searching from")
	matchCmd.Flags().BoolVarP(&matchQuiet, "quiet", "q", false, "Print nothing, only set the exit status")
}

// compilePattern compiles a command line pattern, turning the error cell
// into a Go error.
func compilePattern(pattern string) (*capi.Regex, error) {
	errCell := capi.NewError()
	defer errCell.Free()

	re := capi.CompileString(pattern, errCell)
	if re == nil {
		logger.Debug("compile failed",
			zap.String("pattern", pattern),
			zap.Stringer("kind", errCell.Kind()))
		return nil, fmt.Errorf("invalid pattern: %w", errCell.Err())
	}
	logger.Debug("compiled",
		zap.String("pattern", pattern),
		zap.Int("groups", re.CapturesLen()))
	return re, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matchStart < 0 {
		return fmt.Errorf("--start must not be negative")
	}

	re, err := compilePattern(args[0])
	if err != nil {
		return err
	}
	defer re.Free()

	_, data, err := readInput(cmd, args, 1)
	if err != nil {
		return err
	}

	matched := re.IsMatch(data, matchStart)
	if !matchQuiet {
		if matched {
			fmt.Fprintln(cmd.OutOrStdout(), "match")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "no match")
		}
	}
	if !matched {
		return errNoMatch
	}
	return nil
}
