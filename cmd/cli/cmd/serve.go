// Package cmd - serve and rates commands
package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gedeza/business-consulting/core/types"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		addr := a.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		fmt.Fprintf(cmd.OutOrStdout(), "consulting-quote API v%s on %s\n", Version, addr)
		return a.Server(Version).ListenAndServe(ctx, addr)
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show exchange rates against ZAR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		snapshot, err := a.Rates.Rates(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Source:  %s\n", snapshot.Source)
		fmt.Fprintf(w, "Fetched: %s\n", snapshot.FetchedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Hash:    %s\n\n", snapshot.Hash())
		fmt.Fprintf(w, "%-8s %14s\n", "CURRENCY", "PER 1 "+types.BaseCurrency.String())
		for _, c := range snapshot.Currencies() {
			r, _ := snapshot.Rate(c)
			fmt.Fprintf(w, "%-8s %14s\n", c, r.String())
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (default from config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ratesCmd)
}
