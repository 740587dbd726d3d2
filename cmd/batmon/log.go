package main

import (
	"github.com/spf13/cobra"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/config"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/eventlog"
)

// NewLogCommand prints the tail of the event log and exits. It reads the
// file directly, so it works whether or not the daemon is running.
func NewLogCommand() *cobra.Command {
	var (
		tailCount int
		logPath   string
	)

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Print the battery event log and exit",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := logPath
			if path == "" {
				conf, err := config.NewFile(configPath)
				if err != nil {
					return err
				}
				path = conf.LogPath()
			}

			lines, err := eventlog.Tail(path, tailCount)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				cmd.Printf("event log %s is empty or does not exist\n", path)
				return nil
			}
			for _, line := range lines {
				cmd.Println(line)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&tailCount, "tail", 100, "number of trailing lines to print")
	f.StringVarP(&logPath, "log-path", "l", "", "event log path (defaults to the configured one)")

	return cmd
}
