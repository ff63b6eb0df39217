package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
	lang       string
}

func newRootCmd(deps dependencies) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "xlamctl [name]",
		Short: "Locate an Excel add-in (.xlam) and enable it",
		Long: `xlamctl finds the most recently created .xlam file whose name contains
the given fragment in the Office add-ins folder and enables it in Excel.
Running it without a subcommand is the same as "xlamctl activate".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivate(cmd, flags, deps, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the configuration file (default <user config dir>/xlamctl/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&flags.lang, "lang", "", "Output language: es or en (overrides the config file)")

	cmd.AddCommand(newActivateCmd(flags, deps))
	cmd.AddCommand(newLocateCmd(flags, deps))
	cmd.AddCommand(newDirCmd(flags, deps))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
