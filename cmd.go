package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SabNK/client-1c-timesheet/internal/app"
)

var version = "dev"

func SetupCommands() *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:   "timesheet1c",
		Short: "Gateway between local time tracking and 1C timesheet documents",
	}

	// command for running the HTTP API server
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}

	// command for a one-shot catalog refresh from 1C
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Refresh catalog caches from 1C and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			run, err := application.Deps().SyncService.Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Synced %d time groups, %d organizations, %d employees\n",
				run.TimeGroups, run.Organizations, run.Employees)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	// add commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
