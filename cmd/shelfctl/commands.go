package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"shelfthis/internal/dashboard"
	"shelfthis/internal/history"
	"shelfthis/internal/stats"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Copy the configured export into Postgres",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Importer == nil {
				return history.ErrNoDatabase
			}
			run, err := a.Importer.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "imported %s rows (%s read) from %s\n",
				humanize.Comma(int64(run.RowsTotal)), humanize.Comma(int64(run.RowsRead)), run.Source)
			return nil
		},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Print reading statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "year",
				Usage: "Completion year, or 'all'",
				Value: "all",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			year, err := dashboard.ParseYear(cmd.String("year"))
			if err != nil {
				return fmt.Errorf("--year: %w", err)
			}

			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			read, err := a.History.Records(ctx)
			if err != nil {
				return err
			}
			writeSummary(cmd.Root().Writer, read, year)
			return nil
		},
	}
}

func coverCommand() *cli.Command {
	return &cli.Command{
		Name:      "cover",
		Usage:     "Resolve the cover image for an ISBN",
		ArgsUsage: "<isbn>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			isbn := strings.TrimSpace(cmd.Args().First())
			if isbn == "" {
				return errors.New("isbn argument is required")
			}

			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.Dashboard.Cover(ctx, isbn)
			if res.Placeholder {
				fmt.Fprintf(cmd.Root().Writer, "%s\t%s (placeholder)\n", isbn, res.URL)
				return nil
			}
			fmt.Fprintf(cmd.Root().Writer, "%s\t%s\n", isbn, res.URL)
			return nil
		},
	}
}

// writeSummary renders the dashboard numbers as plain text.
func writeSummary(w io.Writer, read []history.Record, year int) {
	selected := stats.FilterYear(read, year)

	label := "all years"
	if year != stats.AllYears {
		label = strconv.Itoa(year)
	}
	fmt.Fprintf(w, "Books read (%s): %s\n", label, humanize.Comma(int64(len(selected))))

	if avg, ok := stats.AverageRating(selected); ok {
		fmt.Fprintf(w, "Average rating: %s\n", humanize.FtoaWithDigits(avg, 2))
	} else {
		fmt.Fprintln(w, "Average rating: n/a")
	}

	formats := stats.FormatCounts(selected)
	if top, ok := stats.MostUsedFormat(formats); ok {
		fmt.Fprintf(w, "Most used format: %s (%s)\n", top.Label, humanize.Comma(int64(top.Count)))
	}

	writeCounts(w, "Formats", formats)
	writeCounts(w, "Star ratings", stats.RatingCounts(selected))

	fmt.Fprintln(w, "Books per year:")
	for _, y := range stats.BooksPerYear(read) {
		fmt.Fprintf(w, "  %d\t%s\n", y.Year, humanize.Comma(int64(y.Count)))
	}
}

func writeCounts(w io.Writer, title string, counts []stats.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, c := range counts {
		fmt.Fprintf(w, "  %s\t%s\n", c.Label, humanize.Comma(int64(c.Count)))
	}
}
