// Package cmd - client registry commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gedeza/business-consulting/core/types"
)

var newClient types.Client

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage saved clients",
	Long: `Manage saved clients.

A quote whose client name matches a saved client carries the client's
contact details.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		list, err := a.Clients.List(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(w, "No saved clients.")
			return nil
		}
		fmt.Fprintf(w, "%-36s  %-24s  %-28s  %s\n", "ID", "NAME", "EMAIL", "COMPANY")
		for _, c := range list {
			fmt.Fprintf(w, "%-36s  %-24s  %-28s  %s\n", c.ID, truncate(c.Name, 24), truncate(c.Email, 28), c.Company)
		}
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		saved, err := a.Clients.Save(cmd.Context(), newClient)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved client %s (%s)\n", saved.Name, saved.ID)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		c, err := a.Clients.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		ok, err := confirmer(cmd).Confirm(fmt.Sprintf("Delete client %q?", c.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if err := a.Clients.Delete(cmd.Context(), c.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted client %s\n", c.Name)
		return nil
	},
}

func init() {
	f := clientsAddCmd.Flags()
	f.StringVar(&newClient.ID, "id", "", "replace the client with this id")
	f.StringVar(&newClient.Name, "name", "", "client name (required)")
	f.StringVar(&newClient.Email, "email", "", "email address (required)")
	f.StringVar(&newClient.Company, "company", "", "company name")
	f.StringVar(&newClient.Phone, "phone", "", "phone number")
	f.StringVar(&newClient.PhysicalAddress, "address", "", "physical address")
	clientsDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	clientsCmd.AddCommand(clientsListCmd, clientsAddCmd, clientsDeleteCmd)
	rootCmd.AddCommand(clientsCmd)
}
