package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	dataPath   string
	pageSize   int
	theme      string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := newAppContext(flags)

	cmd := &cobra.Command{
		Use:           "bookconnect",
		Short:         "Browse a book catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, launch the browser
			return runBrowseCommand(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the configuration file (default: user config dir)")
	cmd.PersistentFlags().StringVarP(&flags.dataPath, "data", "d", "", "Path to a catalog dataset (default: bundled sample)")
	cmd.PersistentFlags().IntVar(&flags.pageSize, "page-size", 0, "Number of books per page")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Colour theme: day, night or auto")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error or disabled")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file")

	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
