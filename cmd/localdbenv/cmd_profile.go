package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// profileCmd writes a publish profile without touching any instance.
func (a *app) profileCmd() *cobra.Command {
	var database, connectionString string

	cmd := &cobra.Command{
		Use:   "profile [NAME]",
		Short: "Generate a publish profile from the template",
		Long: `Write {database}.publish.xml to the base directory from the publish profile
template. The connection string defaults to the named (or configured)
instance.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if database == "" {
				return errors.New("--database is required")
			}
			if connectionString == "" {
				name, err := a.instanceName(args)
				if err != nil {
					return err
				}
				connectionString = instanceConnectionString(name)
			}

			path, err := a.newManager(a.cfg).CreatePublishProfile(database, connectionString)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "database", "", "database name substituted into the template")
	cmd.Flags().StringVar(&connectionString, "connection-string", "", "target connection string (default: the instance's)")
	return cmd
}
