package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	projectsCmd := &cobra.Command{Use: "projects", Short: "Saved project operations"}

	var owner string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects for an owner, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(a.projects.List(cmd.Context(), owner))
		},
	}
	listCmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner user ID (required)")
	_ = listCmd.MarkFlagRequired("owner")
	projectsCmd.AddCommand(listCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete a project by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	projectsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(projectsCmd)
}
