// Package cmd - document template commands
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse document templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list [service]",
	Short: "List document templates, optionally for one service",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		services := a.Templates.Services()
		if len(args) == 1 {
			if a.Templates.ByService(args[0]) == nil {
				return fmt.Errorf("no templates for service %q", args[0])
			}
			services = args
		}

		w := cmd.OutOrStdout()
		for _, svc := range services {
			fmt.Fprintf(w, "%s\n", svc)
			fmt.Fprintln(w, strings.Repeat("─", len(svc)))
			for _, t := range a.Templates.ByService(svc) {
				fmt.Fprintf(w, "  %-28s %-40s %3d-%dh\n", t.ID, truncate(t.Name, 40), t.EstimatedHours.Min, t.EstimatedHours.Max)
				if len(t.Compliance) > 0 {
					fmt.Fprintf(w, "  %-28s compliance: %s\n", "", strings.Join(t.Compliance, ", "))
				}
			}
			fmt.Fprintln(w, "")
		}
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	rootCmd.AddCommand(templatesCmd)
}
