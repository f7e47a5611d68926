// Package cmd - service catalog commands
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gedeza/business-consulting/core/types"
)

var (
	serviceDescription string
	serviceTasks       []string
	perDocumentTasks   []string
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage the service catalog",
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom services",
	Args:  cobra.NoArgs,
	RunE:  runServicesList,
}

var servicesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a service and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesShow,
}

var servicesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace a custom service",
	Long: `Add or replace a custom service.

Tasks are given as "Task=hours". Tasks without a positive hour value are
dropped; the service is rejected when no task remains. A custom service with
the name of a built-in service overrides it.

Example:
  consulting-quote services add "Grant Writing" --description "Grant applications" \
      --task "Eligibility Review=3" --task "Drafting=8" --per-document Drafting`,
	Args: cobra.ExactArgs(1),
	RunE: runServicesAdd,
}

var servicesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a custom service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesDelete,
}

var servicesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import custom services from an HCL or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesImport,
}

func init() {
	servicesAddCmd.Flags().StringVar(&serviceDescription, "description", "", "service description (required)")
	servicesAddCmd.Flags().StringArrayVar(&serviceTasks, "task", nil, `task as "Task=hours"; repeatable`)
	servicesAddCmd.Flags().StringSliceVar(&perDocumentTasks, "per-document", nil, "tasks whose hours scale with the document count")
	servicesDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	servicesCmd.AddCommand(servicesListCmd, servicesShowCmd, servicesAddCmd, servicesDeleteCmd, servicesImportCmd)
	rootCmd.AddCommand(servicesCmd)
}

func runServicesList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-40s  %-10s  %-7s  %6s\n", "SERVICE", "MODEL", "TIER", "TASKS")
	for _, svc := range a.Catalog.List() {
		tier := "builtin"
		if a.Catalog.IsCustom(svc.Name) {
			tier = "custom"
		}
		fmt.Fprintf(w, "%-40s  %-10s  %-7s  %6d\n", truncate(svc.Name, 40), svc.Model(), tier, len(svc.Tasks))
	}

	stats := a.Catalog.Stats()
	fmt.Fprintf(w, "\n%d services (%d built-in, %d custom, %d overridden)\n",
		stats.Total, stats.Builtin, stats.Custom, stats.Overridden)
	return nil
}

func runServicesShow(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	svc, err := a.Catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", svc.Name)
	fmt.Fprintf(w, "%s\n\n", svc.Description)
	fmt.Fprintf(w, "Pricing model:        %s\n", svc.Model())
	fmt.Fprintf(w, "Requires doc count:   %t\n", svc.RequiresDocCount)
	fmt.Fprintf(w, "Groundwork reduction: %t\n", svc.GroundworkReduction)

	if len(svc.Tasks) == 0 {
		return nil
	}
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "%-44s %6s\n", "TASK", "HOURS")
	for _, t := range svc.Tasks {
		name := t.Name
		if t.PerDocument && !strings.Contains(strings.ToLower(name), "per document") {
			name += " (per document)"
		}
		fmt.Fprintf(w, "%-44s %6s\n", truncate(name, 44), t.Hours.String())
	}
	return nil
}

func runServicesAdd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	perDoc := make(map[string]bool, len(perDocumentTasks))
	for _, n := range perDocumentTasks {
		perDoc[strings.TrimSpace(n)] = true
	}

	svc := types.Service{Name: args[0], Description: serviceDescription}
	for _, raw := range serviceTasks {
		i := strings.LastIndex(raw, "=")
		if i <= 0 {
			return fmt.Errorf("--task %q: expected \"Task=hours\"", raw)
		}
		name := strings.TrimSpace(raw[:i])
		hours, err := parseDecimalFlag("task", raw[i+1:])
		if err != nil {
			return err
		}
		svc.Tasks = append(svc.Tasks, types.Task{Name: name, Hours: hours, PerDocument: perDoc[name]})
	}

	stored, err := a.Catalog.UpsertCustom(cmd.Context(), svc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q with %d tasks\n", stored.Name, len(stored.Tasks))
	if dropped := len(svc.Tasks) - len(stored.Tasks); dropped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Dropped %d invalid tasks\n", dropped)
	}
	return nil
}

func runServicesDelete(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ok, err := confirmer(cmd).Confirm(fmt.Sprintf("Delete custom service %q?", args[0]))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	if err := a.Catalog.DeleteCustom(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
	return nil
}

func runServicesImport(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	res, err := a.Catalog.LoadFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, name := range res.Imported {
		fmt.Fprintf(w, "imported  %s\n", name)
	}
	rejected := make([]string, 0, len(res.Rejected))
	for name := range res.Rejected {
		rejected = append(rejected, name)
	}
	sort.Strings(rejected)
	for _, name := range rejected {
		fmt.Fprintf(w, "rejected  %s: %s\n", name, res.Rejected[name])
	}
	return nil
}
