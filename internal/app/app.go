package app

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/phonebook/internal/config"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, opens and initializes the contact store and logs a summary
// of the published collections.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	st, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	active, _ := st.ActiveContacts().Get()
	trashed, _ := st.TrashedContacts().Get()
	colors, _ := st.Colors().Get()

	logger.Info("contact book loaded",
		slog.Int("active", len(active)),
		slog.Int("trashed", len(trashed)),
		slog.Int("colors", len(colors)),
	)

	return nil
}
