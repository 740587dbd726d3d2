package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/config"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/daemon"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/version"
)

// NewMonitorCommand runs the poll loop in the foreground. Command-line
// flags override the config file for this run only.
func NewMonitorCommand() *cobra.Command {
	var (
		intervalSeconds int
		timeoutMS       int
		logPath         string
		noLogFile       bool
		noNotify        bool
	)

	cmd := &cobra.Command{
		Use:     "monitor",
		Short:   "Run the battery monitor in the foreground",
		GroupID: gBasic,
		Long: `Run the battery monitor in the foreground.

Polls every battery on a dynamic interval, applies the notification
thresholds, appends to the event log, and serves status on a unix socket.
Exits with code 1 when no battery is present.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("batmon starting")

			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("interval") {
				conf.SetInterval(time.Duration(intervalSeconds) * time.Second)
			}
			if flags.Changed("timeout") {
				conf.SetNotifyTimeout(timeoutMS)
			}
			if flags.Changed("log-path") {
				conf.SetLogPath(logPath)
			}
			if flags.Changed("no-log-file") {
				conf.SetLogFileDisabled(noLogFile)
			}
			if flags.Changed("no-notify") {
				conf.SetNotifyDisabled(noNotify)
			}

			return daemon.Run(conf, unixSocketPath)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&intervalSeconds, "interval", "i", 60, "default poll interval in seconds (shortened automatically when charge is low)")
	f.IntVarP(&timeoutMS, "timeout", "t", 8000, "default notification timeout in milliseconds")
	f.StringVarP(&logPath, "log-path", "l", "", "event log path (default $HOME/battery_monitor.log)")
	f.BoolVar(&noLogFile, "no-log-file", false, "do not write the event log file")
	f.BoolVar(&noNotify, "no-notify", false, "log notifications instead of sending them (dry run)")

	return cmd
}
