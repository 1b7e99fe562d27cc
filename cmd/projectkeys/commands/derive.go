package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
)

var deriveCmd = &cobra.Command{
	Use:   "derive NAME...",
	Short: "Print the base key derived from a project name",
	Long: `Print the base key a project name derives to, before collision
suffixes are applied. Does not touch the database.

Examples:
  projectkeys derive "Fiesta Lama"   # FL
  projectkeys derive Acme            # ACM`,
	Args: cobra.MinimumNArgs(1),
	// No configuration needed.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		key, err := projectkey.DeriveFromName(name)
		if err == nil && len(key) < projectkey.MinLength {
			err = projectkey.ErrEmptyName
		}
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
		return err
	},
}
