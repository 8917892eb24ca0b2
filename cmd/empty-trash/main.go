// Command empty-trash permanently deletes every contact currently in the
// trash. It is intended to be invoked by hand or by an external cron job.
//
// Flags:
//
//	--dry-run  report what would be deleted without deleting
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/phonebook/internal/app"
	"github.com/heartmarshall/phonebook/internal/config"
	"github.com/heartmarshall/phonebook/internal/domain"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would be deleted without deleting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	st, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	if *dryRun {
		trashed, _ := st.TrashedContacts().Get()
		ids := domain.ContactIDs(trashed)
		logger.Info("dry run: trash not emptied",
			slog.Int("trashed", len(ids)),
			slog.Any("ids", ids),
		)
		return
	}

	// Trash membership is re-read inside the delete, so contacts restored
	// since startup are kept.
	res, err := st.EmptyTrash(ctx)
	if err != nil {
		logger.Error("empty trash failed", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	logger.Info("trash emptied",
		slog.Int("deleted", len(res.Affected)),
	)
}
