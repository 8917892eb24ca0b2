// Command phonebook prepares the contact book storage: it applies
// migrations, seeds an empty database and logs what the store publishes.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/phonebook/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("phonebook failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
