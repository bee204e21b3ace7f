/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/cristianoliveira/rmgrid/internal/api"
	"github.com/cristianoliveira/rmgrid/internal/config"
	"github.com/cristianoliveira/rmgrid/internal/domain"
	"github.com/cristianoliveira/rmgrid/internal/format"
	"github.com/cristianoliveira/rmgrid/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxListPages bounds a single --through range.
const maxListPages = 50

const listCommandLong = `Fetch one page (or a range of pages) and print the characters.

Sorting and filtering apply to each page on its own, exactly as in the
browser.

USAGE:
    rmgrid list [OPTIONS]

OPTIONS:
    --page <n>           Page to fetch (default from start_page)
    --through <m>        Also fetch pages up to m, concurrently
    --sort <field>       name or created
    --order <order>      asc or desc
    --status <status>    all, alive, dead or unknown
    --format <format>    table (default), json or yaml
    -h, --help           Show this help

EXAMPLES:
    # Dead characters of page 3 by creation date, newest first
    rmgrid list --page 3 --status dead --sort created --order desc

    # First five pages as YAML
    rmgrid list --through 5 --format yaml`

type listOptions struct {
	Page    int
	Through int
	SortBy  string
	Order   string
	Status  string
	Format  string
}

// NewListCmd creates the list command.
func NewListCmd(deps Deps) *cobra.Command {
	var opts listOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print characters of one or more pages",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, deps, opts)
		},
	}
	listCmd.Flags().IntVar(&opts.Page, "page", 0, "Page to fetch (default from start_page)")
	listCmd.Flags().IntVar(&opts.Through, "through", 0, "Last page of a range to fetch")
	listCmd.Flags().StringVar(&opts.SortBy, "sort", "", "Sort field: name, created")
	listCmd.Flags().StringVar(&opts.Order, "order", "", "Sort order: asc, desc")
	listCmd.Flags().StringVar(&opts.Status, "status", "", "Status filter: all, alive, dead, unknown")
	listCmd.Flags().StringVar(&opts.Format, "format", "table", "Output format: table, json, yaml")
	return listCmd
}

func runList(cmd *cobra.Command, deps Deps, opts listOptions) error {
	view, err := resolveView(opts)
	if err != nil {
		return err
	}
	formatterType, err := format.ParseFormatterType(opts.Format)
	if err != nil {
		return err
	}
	pages, err := pageRange(opts.Page, opts.Through)
	if err != nil {
		return err
	}

	listings, err := fetchListings(cmd.Context(), deps.NewFetcher(), pages, config.GetInt("list_concurrency", 4))
	if err != nil {
		return err
	}
	for i := range listings {
		listings[i].Characters = domain.Apply(listings[i].Characters, view)
	}

	return newListFormatter(formatterType).FormatListings(listings, cmd.OutOrStdout())
}

func newListFormatter(t format.FormatterType) format.Formatter {
	if t != format.FormatterTypeTable {
		return format.NewFormatter(t)
	}
	cfg := format.DefaultTableConfig()
	if os.Getenv("NO_COLOR") != "" {
		cfg.HeaderColor = ""
	}
	return format.NewTableFormatter(cfg)
}

// resolveView merges flags over the configured defaults.
func resolveView(opts listOptions) (domain.ViewOptions, error) {
	view := viewOptionsFromConfig()
	if opts.SortBy != "" {
		by, err := domain.ParseSortByField(opts.SortBy)
		if err != nil {
			return view, err
		}
		view.SortBy = by
	}
	if opts.Order != "" {
		order, err := domain.ParseSortOrder(opts.Order)
		if err != nil {
			return view, err
		}
		view.SortOrder = order
	}
	if opts.Status != "" {
		status, err := domain.ParseStatusFilter(opts.Status)
		if err != nil {
			return view, err
		}
		view.FilterStatus = status
	}
	return view, nil
}

// pageRange returns the pages to fetch in order.
func pageRange(page, through int) ([]int, error) {
	if page == 0 {
		page = config.GetInt("start_page", 1)
	}
	if page < 1 {
		return nil, fmt.Errorf("invalid page %d: must be at least 1", page)
	}
	if through == 0 {
		through = page
	}
	if through < page {
		return nil, fmt.Errorf("invalid range: --through %d is before --page %d", through, page)
	}
	if through-page+1 > maxListPages {
		return nil, fmt.Errorf("invalid range: at most %d pages per call", maxListPages)
	}
	pages := make([]int, 0, through-page+1)
	for p := page; p <= through; p++ {
		pages = append(pages, p)
	}
	return pages, nil
}

// fetchListings fetches pages with at most limit requests in flight and
// returns them in the order given. The first failure cancels the rest.
func fetchListings(ctx context.Context, fetcher api.CharacterFetcher, pages []int, limit int) ([]format.Listing, error) {
	if limit < 1 {
		limit = 1
	}
	listings := make([]format.Listing, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, page := range pages {
		g.Go(func() error {
			result, err := fetcher.FetchCharacters(gctx, page)
			if err != nil {
				logFetchFailure(page, err)
				return err
			}
			listings[i] = format.Listing{Page: page, Info: result.Info, Characters: result.Results}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listings, nil
}

func logFetchFailure(page int, err error) {
	detail := err.Error()
	var ferr *api.FetchError
	if stderrors.As(err, &ferr) {
		detail = ferr.Detail()
	}
	logging.Warn("fetch failed", "page", page, "error", detail)
}
