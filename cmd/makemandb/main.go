// Command makemandb builds or incrementally updates the apropos
// full-text index, the Go analog of the original makemandb(8) utility.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mandb/apropos"
	"github.com/spf13/pflag"
)

func main() {
	var (
		force     = pflag.BoolP("force", "f", false, "rebuild the index from scratch")
		namesOnly = pflag.BoolP("limit", "l", false, "index only page names and short descriptions")
		optimize  = pflag.BoolP("optimize", "o", false, "optimize the index after updating it")
		config    = pflag.StringP("config", "C", "", "path to a YAML config file")
	)
	pflag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := apropos.LoadConfig(*config)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if len(pflag.Args()) > 0 {
		cfg.ManRoots = pflag.Args()
	}

	if *force {
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = "apropos.db"
		}
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			slog.Error("removing existing index", "error", err)
			os.Exit(1)
		}
	}

	engine, err := apropos.New(cfg)
	if err != nil {
		slog.Error("opening index", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	summary, err := engine.Reindex(context.Background(), apropos.ReindexOptions{
		Force:     *force,
		NamesOnly: *namesOnly,
		Optimize:  *optimize,
	})
	if err != nil {
		slog.Error("reindex failed, rebuild with -f", "error", err)
		os.Exit(1)
	}

	slog.Info("reindex complete",
		"total", summary.Total,
		"new", summary.New,
		"updated", summary.Updated,
		"linked", summary.Linked,
		"pruned", summary.Pruned,
		"errors", summary.Errors,
	)
}
