package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganot/worklog/internal/config"
	"github.com/ganot/worklog/internal/model"
	"github.com/ganot/worklog/internal/session"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Show a draft pre-filled from your most recent entry",
	Args:  cobra.NoArgs,
	RunE:  runResume,
}

func runResume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, cfg, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.Backend != config.BackendHosted {
		fmt.Fprintln(os.Stderr, "resume requires the hosted backend (the local log has no user sessions)")
		os.Exit(1)
	}
	if strings.TrimSpace(cfg.UserName) == "" {
		fmt.Fprintln(os.Stderr, session.ErrMissingUserName)
		os.Exit(1)
	}

	draft, err := session.Resume(ctx, st, cfg.UserName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if draft == nil {
		fmt.Println("Nothing to resume.")
		return nil
	}

	fmt.Printf("Resumed last session for %s:\n", cfg.UserName)
	switch draft.Kind {
	case model.KindQA:
		fmt.Println("  Type: QA")
		fmt.Printf("  QA name: %s\n", draft.QAName)
		fmt.Printf("  Ticket #: %s\n", draft.TicketNumber)
	case model.KindAdHoc:
		fmt.Println("  Type: Ad Hoc")
		fmt.Printf("  Description: %s\n", draft.Description)
	default:
		fmt.Println("  Type: Ticket")
		fmt.Printf("  Ticket #: %s\n", draft.TicketNumber)
	}
	return nil
}
