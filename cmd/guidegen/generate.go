package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/guidegen/internal/backend"
	"github.com/jask/guidegen/internal/download"
	"github.com/jask/guidegen/internal/guides"
	"github.com/jask/guidegen/internal/workflow"
)

type generateOptions struct {
	json     bool
	txt      bool
	showJSON bool
	out      string
	search   string
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate <file.csv>",
	Short: "Generate guides without the interactive UI",
	Long: `Upload a CSV, print the returned guides and optionally save the exports.

Examples:
  guidegen generate ./products.csv
  guidegen generate ./products.csv --search kettle --show-json
  guidegen generate ./products.csv --json --txt --out ./exports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		dir := e.cfg.Download.Dir
		if genOpts.out != "" {
			dir = genOpts.out
		}
		r := &workflow.Runner{
			Backend:  e.client,
			Session:  guides.NewSession(),
			Saver:    download.Saver{Dir: dir},
			Progress: e.simulator(),
			Logger:   e.logger,
			Status:   func(_ int, text string) { printStep("%s", text) },
			Notify:   notice,
		}
		return runGenerate(cmd.Context(), r, args[0], genOpts, os.Stdout)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&genOpts.json, "json", false, "save the JSON export")
	generateCmd.Flags().BoolVar(&genOpts.txt, "txt", false, "save the TXT export")
	generateCmd.Flags().BoolVar(&genOpts.showJSON, "show-json", false, "print each guide's JSON under its title")
	generateCmd.Flags().StringVar(&genOpts.out, "out", "", "directory for exports (default download.dir)")
	generateCmd.Flags().StringVar(&genOpts.search, "search", "", "only list guides containing this text")
}

// runGenerate uploads path, lists the guides on out and saves the requested
// exports. Failures have already been shown through r.Notify.
func runGenerate(ctx context.Context, r *workflow.Runner, path string, opts generateOptions, out io.Writer) error {
	gs, err := r.Generate(ctx, path)
	if err != nil {
		return reportedError{err}
	}

	var deck guides.Deck
	deck.Render(gs)
	deck.Filter(opts.search)
	if err := writeCards(out, &deck, opts.showJSON); err != nil {
		return err
	}

	var kinds []backend.ExportKind
	if opts.json {
		kinds = append(kinds, backend.ExportJSON)
	}
	if opts.txt {
		kinds = append(kinds, backend.ExportTXT)
	}
	for _, kind := range kinds {
		saved, err := r.Export(ctx, kind)
		if err != nil {
			return reportedError{err}
		}
		printStep("saved %s", saved)
	}
	return nil
}

func writeCards(w io.Writer, deck *guides.Deck, showJSON bool) error {
	visible := deck.Visible()
	if deck.Len() == 0 {
		_, err := fmt.Fprintln(w, "The server returned no guides.")
		return err
	}
	if len(visible) == 0 {
		_, err := fmt.Fprintln(w, "No guides match the search.")
		return err
	}
	var b strings.Builder
	for _, idx := range visible {
		card, _ := deck.Card(idx)
		b.WriteString(titleColor.Sprint(card.Title))
		if card.Summary != "" {
			b.WriteString("  " + card.Summary)
		}
		b.WriteString("\n")
		if showJSON {
			b.WriteString(card.JSON + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
