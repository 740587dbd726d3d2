package main

import (
	"github.com/spf13/cobra"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/client"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			apiClient := client.NewClient(unixSocketPath)
			if daemonVersion, err := apiClient.GetVersion(); err == nil && daemonVersion != version.Version {
				cmd.Printf("daemon: %s\n", daemonVersion)
			}
		},
	}
}
