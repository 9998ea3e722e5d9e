package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/avirtanen/siderovalley/internal/e2etest"
	"github.com/avirtanen/siderovalley/internal/errors"
	"github.com/avirtanen/siderovalley/internal/logging"
)

// TestInvestigation drives the opening moves of an investigation against a
// deployed server: take the assignment, check the line list renders, and run
// one interview turn.
func TestInvestigation(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}

	doc, err := client.AcknowledgeAlert(ctx)
	if err != nil {
		return errors.Wrap(err, "acknowledge alert")
	}
	if doc.Find("table.line-list tbody tr").Length() == 0 {
		return errors.New("line list is empty")
	}

	if doc, err = client.Ask(ctx, "dr_chen", "How many patients have been admitted?"); err != nil {
		return errors.Wrap(err, "interview turn")
	}
	if doc.Find("#transcript p.msg-npc").Length() == 0 {
		return errors.New("no reply recorded in transcript")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestInvestigation(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing investigation", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
