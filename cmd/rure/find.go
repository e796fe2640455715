package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	capi "github.com/coregx/coregex-capi"
)

var (
	findCaptures bool
	findMax      int
)

var findCmd = &cobra.Command{
	Use:   "find PATTERN [FILE]",
	Short: "List every non-overlapping match",
	Long: `Compile PATTERN and print each non-overlapping match in FILE (or
stdin) as "start-end: text". With --captures every participating group is
listed under its match.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFind,
}

func init() {
	findCmd.Flags().BoolVarP(&findCaptures, "captures", "c", false, "Print capture groups")
	findCmd.Flags().IntVarP(&findMax, "max", "m", 0, "Stop after this many matches (0 = no limit)")
}

func runFind(cmd *cobra.Command, args []string) error {
	re, err := compilePattern(args[0])
	if err != nil {
		return err
	}
	defer re.Free()

	_, data, err := readInput(cmd, args, 1)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enabled, err := colorEnabled(colorMode, out)
	if err != nil {
		return err
	}
	s := newStyles(enabled)

	n := findAll(out, s, re, data, findCaptures, findMax)
	logger.Debug("find done", zap.Int("matches", n), zap.Int("bytes", len(data)))
	if n == 0 {
		return errNoMatch
	}
	return nil
}

// findAll prints the matches of re in data and returns how many there were.
func findAll(w io.Writer, s *styles, re *capi.Regex, data []byte, withCaptures bool, limit int) int {
	it := re.Iter(data)
	defer it.Free()

	var caps *capi.Captures
	if withCaptures {
		caps = capi.NewCaptures(re)
		defer caps.Free()
	}
	names := re.CaptureNames()

	n := 0
	for limit <= 0 || n < limit {
		var m capi.Match
		if caps != nil {
			if !it.NextCaptures(caps) {
				break
			}
			m, _ = caps.At(0)
		} else {
			var ok bool
			if m, ok = it.Next(); !ok {
				break
			}
		}
		n++

		fmt.Fprintf(w, "%s: %s\n",
			s.location.Sprintf("%d-%d", m.Start, m.End),
			s.match.Sprint(string(data[m.Start:m.End])))

		if caps == nil {
			continue
		}
		for i := 1; i < caps.Len(); i++ {
			g, ok := caps.At(i)
			label := fmt.Sprintf("%d", i)
			if names[i] != "" {
				label += " " + names[i]
			}
			if !ok {
				fmt.Fprintf(w, "  %s: -\n", label)
				continue
			}
			fmt.Fprintf(w, "  %s: %s %s\n", label,
				s.location.Sprintf("%d-%d", g.Start, g.End),
				s.group.Sprint(string(data[g.Start:g.End])))
		}
	}
	return n
}
