package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/client"
)

// NewResetCommand re-arms the notification latches of the running
// daemon. Latches are one-shot for the process lifetime otherwise.
func NewResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "reset",
		Short:   "Re-arm all notification latches",
		GroupID: gAdvanced,
		Long: `Re-arm all notification latches.

Every threshold notification fires at most once per battery while the
daemon runs. Use this to make them fire again, e.g. after plugging
through another charge cycle.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			apiClient := client.NewClient(unixSocketPath)

			ret, err := apiClient.ResetLatches()
			if err != nil {
				return fmt.Errorf("failed to reset latches: %w", err)
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}
			return nil
		},
	}
}
