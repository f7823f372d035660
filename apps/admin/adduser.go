package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berrycrepe/choco-chip/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var nu user.NewUser

	cmd := &cobra.Command{
		Use:   "adduser --id ID --email EMAIL --nickname NICKNAME",
		Short: "Create a user. The password is prompted next.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pwd, err := cli.promptPassword()
			if err != nil {
				return err
			}
			nu.Password = pwd

			usr, err := cli.usrSvc.Signup(cmd.Context(), nu, cli.validate)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cli.out, "created user %q (%s)\n", usr.ID, usr.Handle)
			return nil
		},
	}
	cmd.Flags().StringVar(&nu.ID, "id", "", "login id")
	cmd.Flags().StringVar(&nu.Email, "email", "", "email address")
	cmd.Flags().StringVar(&nu.Nickname, "nickname", "", "nickname, also used as the permanent handle")
	return cmd
}
