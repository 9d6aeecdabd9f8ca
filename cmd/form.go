package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ganot/worklog/internal/config"
	"github.com/ganot/worklog/internal/form"
	"github.com/ganot/worklog/internal/summary"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the interactive entry form",
	Args:  cobra.NoArgs,
	RunE:  runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, cfg, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	hostedBackend := cfg.Backend == config.BackendHosted
	var loc *time.Location
	if hostedBackend {
		loc, err = summary.Eastern()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	m := form.New(st, cfg.UserName, hostedBackend, loc)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}
