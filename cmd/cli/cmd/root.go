// Package cmd provides the CLI commands for consulting-quote.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gedeza/business-consulting/adapters/prompt"
	"github.com/gedeza/business-consulting/internal/app"
	"github.com/gedeza/business-consulting/internal/config"
	"github.com/gedeza/business-consulting/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile   string
	verbose   bool
	offline   bool
	assumeYes bool

	application *app.App
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "consulting-quote",
	Short: "Price consulting engagements",
	Long: `consulting-quote produces quotes for consulting services.

Services are priced hourly from a task catalog, or as a percentage of a
funding value. Quotes can be re-priced after editing task hours.

Examples:
  consulting-quote quote "Business Documentation" --client "Acme" --project "Policies" --documents 3
  consulting-quote quote --model percentage --funding 1000000 --support full --client "Acme" --project "Plant"
  consulting-quote quote recalc <id> --edit "Research and Benchmarking=4"
  consulting-quote services list`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if offline {
			cfg.Rates.Offline = true
		}
		config.Set(cfg)

		if err := logging.Initialize(cfg.Logging); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		logging.Sync()
		if application == nil {
			return nil
		}
		err := application.Close()
		application = nil
		return err
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.consulting-quote/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "use the fallback exchange-rate table")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

// loadApp wires the application on first use
func loadApp(cmd *cobra.Command) (*app.App, error) {
	if application != nil {
		return application, nil
	}
	a, err := app.Build(cmd.Context(), config.Get())
	if err != nil {
		return nil, err
	}
	application = a
	return a, nil
}

func confirmer(cmd *cobra.Command) *prompt.Confirmer {
	c := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())
	c.AssumeYes = assumeYes
	return c
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "consulting-quote version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(config.Get()); err != nil {
			return err
		}
		return enc.Close()
	},
}
