package commands

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/projectkeys/pkg/logger"
	"github.com/dmitrymomot/projectkeys/pkg/pg"
	"github.com/dmitrymomot/projectkeys/svc/projects/pgstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply the embedded goose migrations that create the projects table and
its key column, check constraint and case-insensitive unique index.

Requires PG_CONN_URL.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := connect(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.pgCfg
		cfg.MigrationsPath = pgstore.MigrationsDir
		if err := pg.Migrate(ctx, a.pool, pgstore.Migrations, cfg, log.With(logger.Component("migrate"))); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "migrations applied\n")
		return nil
	},
}
