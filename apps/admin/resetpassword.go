package main

import (
	"github.com/spf13/cobra"
)

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "resetpassword --id ID",
		Short: "Reset a user's password. The password is prompted next.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword()
			if err != nil {
				return err
			}
			if pwd == "" {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.usrSvc.ResetPassword(cmd.Context(), id, pwd)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "the user's login id")
	return cmd
}
