package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/Rahik-516/Noor-Web/internal/notify"
	"github.com/Rahik-516/Noor-Web/internal/reminder"
	"github.com/spf13/cobra"
)

func RemindCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run the reminder daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sinks := notify.Fanout{notify.NewLogNotifier(slog.Default())}
			if s.cfg.ReminderEmail != "" {
				sinks = append(sinks, notify.NewEmailNotifier(s.cfg.ResendAPIKey, s.cfg.EmailFrom, s.cfg.ReminderEmail, s.cfg.IsDevelopment()))
			}

			scheduler := reminder.NewScheduler(s.store, s.cache, sinks, s.clock, s.loc, reminder.Config{
				Interval:   s.cfg.ReminderInterval,
				PrayerLead: s.cfg.PrayerLead,
				Evening:    s.cfg.EveningReminder,
				Quran:      s.cfg.QuranReminder,
			})

			return scheduler.Run(ctx)
		},
	}
}
