package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/version"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "meetscribe",
		Short: "Schedule caption-capturing bots for video meetings",
		Long: "meetscribe joins video meetings at their scheduled time with a headless browser, " +
			"records the live captions and posts a speaker-attributed transcript to a callback URL.",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.Version = version.Version
	root.SetVersionTemplate(version.Full() + "\n")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
