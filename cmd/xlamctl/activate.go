package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newActivateCmd(root *rootFlags, deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "activate [name]",
		Short: "Locate the newest matching add-in and enable it in Excel",
		Long: `Activate looks up the newest .xlam file containing <name> in the add-ins
folder, registers it with Excel if needed and sets its installed flag.
Exit codes: 0 enabled, 1 activation failed, 2 usage error, 3 not found,
4 unsupported platform, 5 configuration missing or invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivate(cmd, root, deps, args)
		},
	}
}

func runActivate(cmd *cobra.Command, flags *rootFlags, deps dependencies, args []string) error {
	app, err := buildAppContext(cmd, flags, deps)
	if err != nil {
		return err
	}

	query, err := resolveQuery(args, app.Config.DefaultQuery)
	if err != nil {
		return usageError(errors.New(app.Notices.Usage()))
	}

	ctx := cmd.Context()
	app.Logger.Debug(ctx, "activating add-in", "query", query)

	res := app.Enable.Enable(ctx, query)
	if err := app.Reporter.Fprintln(cmd.OutOrStdout(), res, query); err != nil {
		return err
	}
	return resultError(res)
}
