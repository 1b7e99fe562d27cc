package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/projectkeys/svc/projects"
)

var setKeyCmd = &cobra.Command{
	Use:   "set-key PROJECT_ID KEY",
	Short: "Set the key of one project",
	Long: `Set the key of one project. The key is uppercased and must be 2-10
letters or digits and not used by another project. Useful for projects whose
names do not derive a key.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}

		ctx := cmd.Context()
		a, err := connect(ctx, false)
		if err != nil {
			return err
		}
		defer a.Close()

		svc, err := a.service()
		if err != nil {
			return err
		}

		p, err := svc.SetKey(ctx, id, args[1])
		if fields := projects.FieldErrors(err); fields != nil {
			return fmt.Errorf("%s: %w", args[1], fields)
		}
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "%s  %s\n", p.KeyValue(), p.Name)
		return nil
	},
}
