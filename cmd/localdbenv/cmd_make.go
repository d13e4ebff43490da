package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/localdbenv"
)

// makeCmd creates the make subcommand.
func (a *app) makeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "make [NAME]",
		Short: "Delete and recreate a LocalDB instance",
		Long: `Delete the named instance if it exists, detaching its databases, killing
orphaned engine processes and removing its directory, then create and start a
fresh instance with the same name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := a.instanceName(args)
			if err != nil {
				return err
			}
			if err := a.cfg.RequirePaths(); err != nil {
				return err
			}

			m := a.newManager(a.cfg)
			if err := m.Make(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), instanceConnectionString(name))
			return nil
		},
	}
}

// instanceConnectionString is the connection string printed for a made
// instance.
func instanceConnectionString(name string) string {
	return localdbenv.NewConnectionString().Server(name).IntegratedSecurity().String()
}
