package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	accountsCmd := &cobra.Command{Use: "accounts", Short: "Account operations"}

	var email, secret string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.identity.Register(cmd.Context(), email, secret)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
	registerCmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	registerCmd.Flags().StringVarP(&secret, "secret", "s", "", "Account secret (required)")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("secret")
	accountsCmd.AddCommand(registerCmd)

	var loginEmail, loginSecret string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and print the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.identity.Login(cmd.Context(), loginEmail, loginSecret)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (required)")
	loginCmd.Flags().StringVarP(&loginSecret, "secret", "s", "", "Account secret (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("secret")
	accountsCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(accountsCmd)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
