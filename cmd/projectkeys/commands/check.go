package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/projectkeys/pkg/pg"
	"github.com/dmitrymomot/projectkeys/pkg/redis"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check database and lock backend connectivity",
	Long: `Ping PostgreSQL and, when REDIS_URL is set, Redis. Exits non-zero if
either is unreachable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := connect(ctx, true)
		if err != nil {
			return err
		}
		defer a.Close()

		probes := map[string]func(context.Context) error{
			"postgres": pg.Healthcheck(a.pool),
		}
		if a.redis != nil {
			probes["redis"] = redis.Healthcheck(a.redis)
		}

		for _, name := range []string{"postgres", "redis"} {
			probe, ok := probes[name]
			if !ok {
				continue
			}
			if err := probe(ctx); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "%s ok\n", name)
		}
		return nil
	},
}
