package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/docinblink/api/internal/application/appointment"
	"github.com/robfig/cron/v3"
)

// Start schedules background jobs and returns the running scheduler so the
// caller can Stop it on shutdown. The nightly sweep expires pending
// appointments whose preferred slot has passed.
func Start(appointments appointment.Service) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		n, err := appointments.ExpireStale(ctx)
		if err != nil {
			slog.Error("appointment expiry sweep failed", "error", err)
			return
		}
		slog.Info("appointment expiry sweep finished", "expired", n)
	}); err != nil {
		slog.Error("failed to schedule appointment expiry sweep", "error", err)
	}

	c.Start()
	return c
}
