package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ganot/worklog/internal/config"
	"github.com/ganot/worklog/internal/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show today's per-hour activity summary",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, cfg, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	recs, err := st.Query(ctx, cfg.UserName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	now := time.Now()
	var rows []summary.Row
	if cfg.Backend == config.BackendHosted {
		loc, err := summary.Eastern()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		rows = summary.DailyTemplate(recs, now, loc)
	} else {
		rows = summary.Daily(recs, now)
		if len(rows) == 0 {
			if len(recs) == 0 {
				fmt.Println("No entries logged yet.")
			} else {
				fmt.Println("No entries logged today.")
			}
			return nil
		}
	}

	printRows(rows)
	return nil
}

func printRows(rows []summary.Row) {
	for _, r := range rows {
		fmt.Printf("%s  %s\n", padLabel(r.Label, 12), r.Text)
	}
}

// padLabel right-pads by rune count; the en dash in hour labels throws
// off byte-based %-*s padding.
func padLabel(label string, width int) string {
	if n := utf8.RuneCountInString(label); n < width {
		return label + strings.Repeat(" ", width-n)
	}
	return label
}
