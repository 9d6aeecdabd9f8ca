package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ganot/worklog/internal/config"
	"github.com/ganot/worklog/internal/model"
	"github.com/ganot/worklog/internal/session"
	"github.com/ganot/worklog/internal/summary"
)

var (
	logType   string
	logTicket string
	logQA     string
	logDesc   string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log what you are working on right now",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().StringVar(&logType, "type", "ticket", "Activity type: ticket, qa, adhoc")
	logCmd.Flags().StringVar(&logTicket, "ticket", "", "Ticket number (ticket and qa)")
	logCmd.Flags().StringVar(&logQA, "qa", "", "QA person's name (qa)")
	logCmd.Flags().StringVar(&logDesc, "desc", "", "Free-form description (adhoc)")
}

func runLog(cmd *cobra.Command, args []string) error {
	kind, err := model.ParseKind(logType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	st, cfg, err := openStore(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	draft := session.NewDraft()
	draft.UserName = cfg.UserName
	draft.SetKind(kind)
	draft.TicketNumber = logTicket
	draft.QAName = logQA
	draft.Description = logDesc

	now := time.Now()
	rec, err := draft.ToRecord(now, cfg.Backend == config.BackendHosted)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := st.Append(ctx, rec); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Logged %s at %s\n", summary.Describe(rec), now.Format("15:04:05"))
	return nil
}
