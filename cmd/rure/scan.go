package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/coregex-capi/internal/rules"
)

var (
	scanRules string
	scanJobs  int
)

var scanCmd = &cobra.Command{
	Use:   "scan --rules FILE PATH...",
	Short: "Scan files with a set of named rules",
	Long: `Load named patterns from a YAML rules file, check each rule against its
examples, then scan every PATH with all rules. Files are scanned in
parallel; every worker shares the same compiled patterns.

Findings are printed as "path:start-end rule-id text", grouped by path in
argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanRules, "rules", "r", "", "Path to a YAML rules file")
	scanCmd.Flags().IntVarP(&scanJobs, "jobs", "j", runtime.NumCPU(), "Number of files scanned at once")
	_ = scanCmd.MarkFlagRequired("rules")
}

// finding is one match of one rule in one file.
type finding struct {
	ruleID string
	start  int
	end    int
	text   string
}

func runScan(cmd *cobra.Command, args []string) error {
	rs, err := rules.LoadFile(scanRules)
	if err != nil {
		return err
	}
	compiled, err := rules.Compile(rs)
	if err != nil {
		return err
	}
	defer rules.Free(compiled)
	logger.Debug("rules loaded", zap.String("path", scanRules), zap.Int("count", len(compiled)))

	results, err := scanFiles(cmd.Context(), compiled, args, scanJobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enabled, err := colorEnabled(colorMode, out)
	if err != nil {
		return err
	}
	if total := printFindings(out, newStyles(enabled), args, results); total == 0 {
		return errNoMatch
	}
	return nil
}

// scanFiles runs every rule over every path with at most jobs files in
// flight. results[i] holds the findings for paths[i].
func scanFiles(ctx context.Context, compiled []*rules.Compiled, paths []string, jobs int) ([][]finding, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([][]finding, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", path, err)
			}
			results[i] = scanData(compiled, data)
			logger.Debug("scanned",
				zap.String("path", path),
				zap.Int("bytes", len(data)),
				zap.Int("findings", len(results[i])))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanData collects the matches of every rule, rule by rule.
func scanData(compiled []*rules.Compiled, data []byte) []finding {
	var out []finding
	for _, c := range compiled {
		it := c.Regex.Iter(data)
		for {
			m, ok := it.Next()
			if !ok {
				break
			}
			out = append(out, finding{
				ruleID: c.ID,
				start:  m.Start,
				end:    m.End,
				text:   string(data[m.Start:m.End]),
			})
		}
		it.Free()
	}
	return out
}

func printFindings(w io.Writer, s *styles, paths []string, results [][]finding) int {
	total := 0
	for i, fs := range results {
		for _, f := range fs {
			fmt.Fprintf(w, "%s:%s %s %s\n",
				paths[i],
				s.location.Sprintf("%d-%d", f.start, f.end),
				s.ruleID.Sprint(f.ruleID),
				s.match.Sprint(f.text))
			total++
		}
	}
	return total
}
