package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/projectkeys/svc/projects"
)

var ErrBackfillIncomplete = errors.New("some projects did not get a key")

var (
	backfillConcurrency int
	backfillDryRun      bool
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Assign keys to projects that have none",
	Long: `Derive and assign keys for every project without one, oldest first.
Projects whose names derive no usable key are reported and skipped; set their
keys with set-key. Running backfill again only touches projects still missing
a key.

When REDIS_URL is set, a lock prevents two backfills from running at once.

Examples:
  projectkeys backfill
  projectkeys backfill --dry-run
  projectkeys backfill --concurrency 8`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().IntVarP(&backfillConcurrency, "concurrency", "c", 0, "Name groups processed in parallel (default BACKFILL_CONCURRENCY)")
	backfillCmd.Flags().BoolVar(&backfillDryRun, "dry-run", false, "Print the base keys without resolving collisions or writing")
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	// a dry run never takes the lock
	a, err := connect(ctx, !backfillDryRun)
	if err != nil {
		return err
	}
	defer a.Close()

	concurrency := appCfg.BackfillConcurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = backfillConcurrency
	}
	opts := []projects.ServiceOption{projects.WithBackfillConcurrency(concurrency)}
	if a.locker != nil {
		opts = append(opts, projects.WithBackfillLocker(a.locker))
	}

	svc, err := a.service(opts...)
	if err != nil {
		return err
	}

	var results []projects.BackfillResult
	if backfillDryRun {
		results, err = svc.PlanBackfill(ctx)
	} else {
		results, err = svc.Backfill(ctx)
	}
	if results != nil {
		printResults(cmd.OutOrStdout(), results, backfillDryRun)
	}
	if err != nil {
		return err
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBackfillIncomplete, failed, len(results))
	}
	return nil
}
