// Package main - Entry point for the consulting-quote API server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gedeza/business-consulting/internal/app"
	"github.com/gedeza/business-consulting/internal/config"
	"github.com/gedeza/business-consulting/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "config file")
	addr := flag.String("addr", "", "server address (default from config)")
	flag.Parse()

	if err := run(*cfgFile, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, addr string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = cfg.Server.Addr
	}
	fmt.Printf("consulting-quote API v%s\n", version)
	fmt.Printf("   http://localhost%s\n", addr)
	return a.Server(version).ListenAndServe(ctx, addr)
}
