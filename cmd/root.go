package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ganot/worklog/internal/config"
	"github.com/ganot/worklog/internal/hosted"
	"github.com/ganot/worklog/internal/session"
	"github.com/ganot/worklog/internal/storage"
)

var flagUser string

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Work Logger – record what you are working on",
	Long: `worklog records work activity (tickets, QA pairing, ad hoc work) and
renders a per-hour daily summary. Entries go to a local CSV log or to a
hosted multi-user table, selected in ~/.worklog/config.json.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "User name for hosted entries (default from config or WORKLOG_USER)")
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(formCmd)
}

// openStore loads configuration, fails fast on missing hosted secrets,
// and returns the selected backend store.
func openStore(ctx context.Context) (session.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if flagUser != "" {
		cfg.UserName = flagUser
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	if cfg.Backend == config.BackendHosted {
		return hosted.NewClient(ctx, cfg.Hosted.ServiceURL, cfg.Hosted.AccessKey), cfg, nil
	}

	base, err := storage.BaseDir()
	if err != nil {
		return nil, cfg, err
	}
	return storage.NewLog(storage.LogPath(base)), cfg, nil
}
