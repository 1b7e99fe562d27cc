package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/projectkeys/pkg/config"
	"github.com/dmitrymomot/projectkeys/pkg/logger"
)

type runIDKey struct{}

var (
	appCfg   AppConfig
	envFiles []string
	log      *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "projectkeys",
	Short: "Assign and maintain short unique project keys",
	Long: `projectkeys manages the short keys that identify projects (FL for
"Fiesta Lama"). It applies the database migrations that add the key column,
backfills keys for projects created before keys existed, and sets keys by hand.

Configuration comes from the environment, an optional .env file and the
files given with --env-file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. It is called once by main.main().
// SIGINT and SIGTERM cancel the command context, so a backfill stops
// between projects instead of mid-write.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Load environment variables from these files; earlier files win")
	rootCmd.AddCommand(migrateCmd, backfillCmd, deriveCmd, setKeyCmd, checkCmd)
}

// setup loads configuration and builds the logger before any subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	if len(envFiles) > 0 {
		if err := config.LoadEnv(envFiles...); err != nil {
			return err
		}
	}
	if err := config.Load(&appCfg); err != nil {
		return err
	}

	opts := []logger.Option{
		logger.WithEnvironment(appCfg.Env, "projectkeys"),
		logger.WithOutput(os.Stderr),
		logger.WithContextValue("run_id", runIDKey{}),
	}
	if appCfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(appCfg.LogLevel)))
	}
	if appCfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(appCfg.LogFormat)))
	}
	log = logger.New(opts...)
	logger.SetAsDefault(log)

	cmd.SetContext(context.WithValue(cmd.Context(), runIDKey{}, uuid.NewString()))
	return nil
}
