// Command apropos searches the makemandb-built full-text index for
// manual pages matching a query, the Go analog of the original
// apropos(1) utility.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mandb/apropos"
	"github.com/mandb/apropos/query"
	"github.com/spf13/pflag"
)

func main() {
	var sectionFlags [9]bool
	for i := range sectionFlags {
		digit := strconv.Itoa(i + 1)
		pflag.BoolVarP(&sectionFlags[i], "section"+digit, digit, false, "restrict results to section "+digit)
	}
	paged := pflag.BoolP("pager", "p", false, "pipe results through the configured pager")
	config := pflag.StringP("config", "C", "", "path to a YAML config file")
	pflag.Parse()

	if pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: apropos [-1..-9] [-p] keyword ...")
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	cfg, err := apropos.LoadConfig(*config)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	engine, err := apropos.New(cfg)
	if err != nil {
		slog.Error("opening index", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	var sections []string
	for i, set := range sectionFlags {
		if set {
			sections = append(sections, strconv.Itoa(i+1))
		}
	}

	queryText := strings.Join(pflag.Args(), " ")
	results, err := engine.Search(context.Background(), queryText, apropos.SearchOptions{
		Sections: sections,
		Paged:    *paged,
	})
	if err != nil {
		if errors.Is(err, apropos.ErrNotFound) || errors.Is(err, apropos.ErrNoRelevantTerms) {
			fmt.Println("Sorry, no relevant results could be obtained")
			os.Exit(1)
		}
		slog.Error("search failed", "error", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	var pager *exec.Cmd
	var pagerIn io.WriteCloser
	if *paged {
		pager = exec.Command(cfg.PagerCommand)
		pager.Stdout = os.Stdout
		pager.Stderr = os.Stderr
		pagerIn, err = pager.StdinPipe()
		if err != nil {
			slog.Error("starting pager", "error", err)
			os.Exit(1)
		}
		if err := pager.Start(); err != nil {
			slog.Error("starting pager", "error", err)
			os.Exit(1)
		}
		out = pagerIn
	}

	for _, r := range results {
		fmt.Fprint(out, query.FormatResult(r))
	}

	if pager != nil {
		pagerIn.Close()
		if err := pager.Wait(); err != nil {
			slog.Error("pager exited with error", "error", err)
		}
	}
}
