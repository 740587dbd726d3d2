package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/client"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/config"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/power"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of the battery monitor",
		Long:    `Get the last poll results, notification latches, and configuration from the running daemon.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			apiClient := client.NewClient(unixSocketPath)

			snap, err := apiClient.GetStatus()
			if err != nil {
				return fmt.Errorf("failed to get monitor status: %w", err)
			}

			rawConf, err := apiClient.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}
			conf := config.NewFileFromConfig(rawConf, "")

			cmd.Println(bold("Batteries:"))
			for _, r := range snap.Batteries {
				cmd.Printf("  %s: %s (%s)\n", r.Name, bold("%s", percentText(r)), statusText(r.Status))
				if fired := firedRules(snap.Latches[r.Name]); fired != "" {
					cmd.Printf("    Already notified: %s\n", fired)
				}
			}
			cmd.Println()

			cmd.Println(bold("Power:"))
			cmd.Println("  Plugged in: " + bool2Text(snap.Plugged))
			cmd.Printf("  Lowest charge: %s\n", bold("%d%%", snap.MinPercent))
			cmd.Printf("  Next poll in: %s\n", bold("%s", snap.NextInterval))
			cmd.Println()

			// Hardware detail is best effort; the daemon may not be able
			// to read it on every machine.
			if bats, err := apiClient.GetBatteryInfo(); err == nil && len(bats) > 0 {
				cmd.Println(bold("Hardware:"))
				for i, bat := range bats {
					cmd.Printf("  Battery %d: %s, %.0f/%.0f mWh (designed %.0f mWh), %.2f V\n",
						i, bat.State.String(), bat.Current, bat.Full, bat.Design, bat.Voltage)
				}
				cmd.Println()
			}

			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Low threshold: %s\n", bold("%d%%", conf.LowThreshold()))
			cmd.Printf("  High threshold: %s\n", bold("%d%%", conf.HighThreshold()))
			cmd.Printf("  Unplug threshold: %s\n", bold("%d%%", conf.UnplugThreshold()))
			cmd.Printf("  Full threshold: %s\n", bold("%d%%", conf.FullThreshold()))
			cmd.Printf("  Default interval: %s\n", bold("%s", conf.Interval()))
			cmd.Printf("  Notification timeout: %s\n", bold("%d ms", conf.NotifyTimeout()))
			cmd.Printf("  Event log: %s\n", bold("%s", conf.LogPath()))
			cmd.Printf("  Event log enabled: %s\n", bool2Text(!conf.LogFileDisabled()))
			cmd.Printf("  Notifications enabled: %s\n", bool2Text(!conf.NotifyDisabled()))

			return nil
		},
	}
}

func percentText(r power.Reading) string {
	if r.Percent == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", *r.Percent)
}

func statusText(s power.Status) string {
	switch s {
	case power.StatusCharging:
		return color.GreenString(string(s))
	case power.StatusDischarging:
		return color.RedString(string(s))
	default:
		return string(s)
	}
}

func firedRules(l power.Latches) string {
	var fired []string
	if l.Low {
		fired = append(fired, "low")
	}
	if l.High {
		fired = append(fired, "high")
	}
	if l.Unplug {
		fired = append(fired, "unplug")
	}
	if l.Full {
		fired = append(fired, "full")
	}
	return strings.Join(fired, ", ")
}
