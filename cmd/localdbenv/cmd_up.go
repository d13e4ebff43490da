package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errDatabaseMissing = errors.New("database not found after publish")

// upOptions holds the flags of the up subcommand.
type upOptions struct {
	project     string
	database    string
	linkServers []string
}

// upCmd makes an instance and prepares it in one step.
func (a *app) upCmd() *cobra.Command {
	var opts upOptions

	cmd := &cobra.Command{
		Use:   "up [NAME]",
		Short: "Make an instance, add linked servers and publish a project",
		Long: `Make the named instance, register every --link-server as a fake linked
server, then build and publish --project as --database and verify the
database exists.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if (opts.project == "") != (opts.database == "") {
				return errors.New("--project and --database must be given together")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := a.instanceName(args)
			if err != nil {
				return err
			}
			if err := a.cfg.RequirePaths(); err != nil {
				return err
			}

			ctx := cmd.Context()
			m := a.newManager(a.cfg)
			if err := m.Make(ctx, name); err != nil {
				return err
			}
			for _, server := range opts.linkServers {
				if err := m.AddFakeLinkedServer(ctx, server); err != nil {
					return err
				}
			}

			if opts.project != "" {
				if err := m.BuildAndPublishProject(ctx, opts.project, opts.database); err != nil {
					return err
				}
				exists, err := m.DatabaseExists(ctx, opts.database)
				if err != nil {
					return err
				}
				if !exists {
					return fmt.Errorf("%w: %s", errDatabaseMissing, opts.database)
				}
				a.logger.Info("database published", "instance", name, "database", opts.database)
			}

			fmt.Fprintln(cmd.OutOrStdout(), instanceConnectionString(name))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.project, "project", "", "database project to build and publish")
	cmd.Flags().StringVar(&opts.database, "database", "", "name of the published database")
	cmd.Flags().StringArrayVar(&opts.linkServers, "link-server", nil, "fake linked server to register (repeatable)")
	return cmd
}
