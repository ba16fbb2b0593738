package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/broodsire/internal/cache"
	"github.com/dgallion1/broodsire/internal/config"
	"github.com/dgallion1/broodsire/internal/marker"
	"github.com/dgallion1/broodsire/internal/parser"
	"github.com/dgallion1/broodsire/internal/ranking"
	"github.com/dgallion1/broodsire/internal/report"
	"github.com/spf13/cobra"
)

type options struct {
	document string
	markers  string
	jsonOut  bool
	verbose  bool

	from   int
	to     int
	limit  int
	order  string
	search string
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{
		document: cfg.DocumentPath,
		markers:  cfg.MarkersFile,
		from:     cfg.YearFrom,
		to:       cfg.YearTo,
		limit:    cfg.DefaultLimit,
		order:    string(ranking.OrderCount),
	}

	root := &cobra.Command{
		Use:           "broodsire",
		Short:         "Rank broodmare sires from a pedigree mind map",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.document, "document", "d", opts.document, "pedigree document (.mm, .md, .html, .txt); defaults to $DOCUMENT_PATH")
	root.PersistentFlags().StringVar(&opts.markers, "markers", opts.markers, "YAML marker vocabulary file")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")

	addQueryFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&opts.from, "from", opts.from, "earliest dam birth year (inclusive)")
		cmd.Flags().IntVar(&opts.to, "to", opts.to, "latest dam birth year (inclusive)")
		cmd.Flags().StringVarP(&opts.search, "query", "q", "", "filter by sire, dam or offspring text")
	}

	rank := &cobra.Command{
		Use:   "rank",
		Short: "List sires ranked by elite dam count or score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, cfg, opts)
		},
	}
	addQueryFlags(rank)
	rank.Flags().IntVarP(&opts.limit, "limit", "n", opts.limit, "maximum rows (0 for all)")
	rank.Flags().StringVar(&opts.order, "order", opts.order, "sort by count or score")
	rank.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "show dams and offspring under each sire")

	sire := &cobra.Command{
		Use:   "sire NAME",
		Short: "Show one sire's elite daughters and their offspring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSire(cmd, cfg, opts, args[0])
		},
	}
	addQueryFlags(sire)

	search := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Show elite dams whose name, or whose sire's name, contains KEYWORD, with their offspring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, cfg, opts, args[0])
		},
	}

	root.AddCommand(rank, sire, search)
	return root
}

// load indexes the document. Failures are logged to stderr and returned
// so the process exits non-zero.
func load(cmd *cobra.Command, cfg config.Config, opts *options) (*cache.Entry, *marker.Classifier, error) {
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	if opts.document == "" {
		err := fmt.Errorf("no document: pass --document or set DOCUMENT_PATH")
		log.Error("cannot run", "error", err)
		return nil, nil, err
	}
	if !parser.IsSupportedExtension(opts.document) {
		err := fmt.Errorf("unsupported document type %q (want %s)", filepath.Ext(opts.document), supportedList())
		log.Error("cannot run", "error", err)
		return nil, nil, err
	}
	cfg.DocumentPath = opts.document
	cfg.MarkersFile = opts.markers

	vocab, err := cfg.Vocabulary()
	if err != nil {
		log.Error("invalid marker vocabulary", "error", err)
		return nil, nil, err
	}
	c := marker.New(vocab)

	entry, err := cache.New(c, log).Get(context.Background(), cfg.DocumentPath)
	if err != nil {
		log.Error("document load failed", "path", cfg.DocumentPath, "error", err)
		return nil, nil, err
	}
	return entry, c, nil
}

func supportedList() string {
	exts := make([]string, 0, len(parser.SupportedExtensions))
	for ext := range parser.SupportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

func (o *options) query() (ranking.Query, error) {
	order, err := ranking.ParseOrder(o.order)
	if err != nil {
		return ranking.Query{}, err
	}
	q := ranking.Query{From: o.from, To: o.to, Limit: o.limit, Order: order, Search: o.search}
	return q, q.Validate()
}

func runRank(cmd *cobra.Command, cfg config.Config, opts *options) error {
	q, err := opts.query()
	if err != nil {
		return err
	}
	entry, c, err := load(cmd, cfg, opts)
	if err != nil {
		return err
	}
	rep := report.Build(entry.Index, c, q)
	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	printRanking(cmd.OutOrStdout(), rep, opts.verbose)
	return nil
}

func runSire(cmd *cobra.Command, cfg config.Config, opts *options, name string) error {
	q, err := opts.query()
	if err != nil {
		return err
	}
	entry, c, err := load(cmd, cfg, opts)
	if err != nil {
		return err
	}
	row, ok := report.Sire(entry.Index, c, name, q)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "no elite dams for %q in %d-%d\n", name, q.From, q.To)
		return fmt.Errorf("sire %q not found", name)
	}
	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), row)
	}
	printSire(cmd.OutOrStdout(), row)
	return nil
}

func runSearch(cmd *cobra.Command, cfg config.Config, opts *options, keyword string) error {
	entry, c, err := load(cmd, cfg, opts)
	if err != nil {
		return err
	}
	groups := report.SearchDams(entry.Index, c, keyword)
	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), groups)
	}
	printGroups(cmd.OutOrStdout(), groups)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
