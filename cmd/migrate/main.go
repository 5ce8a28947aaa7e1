package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"commons-dinner/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// migrate applies migrations/001_initial_schema.sql declaratively with the atlas CLI
func main() {
	schemaFile := flag.String("schema", "migrations/001_initial_schema.sql", "desired schema (SQL)")
	devURL := flag.String("dev-url", "docker://postgres/16/dev", "dev database atlas uses to plan the diff")
	dryRun := flag.Bool("dry-run", false, "print the plan without applying it")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	path, err := filepath.Abs(*schemaFile)
	if err != nil {
		slog.Error("resolve schema path", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("init atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.SchemaApply(context.Background(), &atlasexec.SchemaApplyParams{
		URL:         cfg.DB.BuildDSN(),
		To:          "file://" + path,
		DevURL:      *devURL,
		AutoApprove: true,
		DryRun:      *dryRun,
	})
	if err != nil {
		slog.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	slog.Info("schema applied", "statements", len(res.Changes.Applied), "pending", len(res.Changes.Pending), "dry_run", *dryRun)
}
