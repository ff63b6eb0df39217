package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

func newLocateCmd(root *rootFlags, deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "locate [name]",
		Short: "Print the path of the newest matching add-in without touching Excel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildAppContext(cmd, root, deps)
			if err != nil {
				return err
			}

			query, err := resolveQuery(args, app.Config.DefaultQuery)
			if err != nil {
				return usageError(errors.New(app.Notices.Usage()))
			}

			candidate, err := app.Locate.Locate(cmd.Context(), query)
			if err != nil {
				return reportFailure(cmd, app, err, query)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), candidate.Path)
			return err
		},
	}
}

func newDirCmd(root *rootFlags, deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the add-ins directory searched on this platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildAppContext(cmd, root, deps)
			if err != nil {
				return err
			}

			dir, err := app.Locate.Directory()
			if err != nil {
				return reportFailure(cmd, app, err, "")
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	}
}

func reportFailure(cmd *cobra.Command, app *AppContext, err error, query string) error {
	res := addin.ResultFromError(err)
	if printErr := app.Reporter.Fprintln(cmd.OutOrStdout(), res, query); printErr != nil {
		return printErr
	}
	return resultError(res)
}
