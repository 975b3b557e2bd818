package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ritualhq/ritual/internal/costs"
	"github.com/ritualhq/ritual/internal/logging"
)

var costsFlagGlob string

// costsParallelism bounds concurrent log-file reads.
const costsParallelism = 4

// costsCmd implements "ritual costs": compute the exact Claude API cost of PR
// reviews from workflow run logs (the output of `gh run view --log`).
var costsCmd = &cobra.Command{
	Use:   "costs [LOG_FILE...]",
	Short: "Calculate Claude API costs from PR-review workflow run logs",
	Long: `Scan one or more workflow run logs for the Claude usage payload and print
a per-model cost breakdown with an exact recalculation of the run's cost,
cross-checked against the total the API reported.

Log files can be given as arguments, a --glob pattern, or both. Files with
identical content (e.g. the same run exported twice) are counted once.

Examples:
  gh run view 12345 --log > run.log && ritual costs run.log
  ritual costs --glob 'logs/**/*.log'`,
	RunE: runCosts,
}

func init() {
	costsCmd.Flags().StringVar(&costsFlagGlob, "glob", "", "Doublestar glob pattern of log files (e.g. 'logs/**/*.log')")
	rootCmd.AddCommand(costsCmd)
}

// analyzedLog is one log file's parsed cost data plus a content fingerprint
// for duplicate detection.
type analyzedLog struct {
	path string
	hash uint64
	run  *costs.RunCosts
}

func runCosts(cmd *cobra.Command, args []string) error {
	// Created here so it picks up the settings logging.Setup applied in the
	// persistent pre-run.
	logger := logging.New("costs")

	paths := append([]string{}, args...)
	if costsFlagGlob != "" {
		matches, err := doublestar.FilepathGlob(costsFlagGlob)
		if err != nil {
			return fmt.Errorf("expanding glob %q: %w", costsFlagGlob, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no log files given: pass file paths or --glob")
	}
	sort.Strings(paths)

	// Read and parse the logs concurrently; results land in a fixed slice so
	// output order stays deterministic.
	analyzed := make([]*analyzedLog, len(paths))
	var g errgroup.Group
	g.SetLimit(costsParallelism)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading log %s: %w", path, err)
			}
			run, err := costs.FromLog(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			analyzed[i] = &analyzedLog{path: path, hash: xxhash.Sum64(data), run: run}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Drop byte-identical duplicates so a re-exported run is not double
	// counted.
	seen := make(map[uint64]string, len(analyzed))
	var grand float64
	reported := 0
	for _, a := range analyzed {
		if prior, dup := seen[a.hash]; dup {
			logger.Debug("skipping duplicate log", "path", a.path, "duplicate_of", prior)
			continue
		}
		seen[a.hash] = a.path

		fmt.Fprintln(os.Stdout, a.run.Report(a.path))
		grand += a.run.CalculatedTotal()
		reported++
	}

	if reported > 1 {
		fmt.Fprintf(os.Stdout, "grand total across %d runs: $%.6f\n", reported, grand)
	}
	return nil
}
