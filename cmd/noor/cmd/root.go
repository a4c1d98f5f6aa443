package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/config"
	"github.com/Rahik-516/Noor-Web/internal/logger"
	"github.com/Rahik-516/Noor-Web/internal/syncclient"
	"github.com/spf13/cobra"
)

const requestTimeout = 10 * time.Second

// session is the state shared by every subcommand for one invocation
type session struct {
	cfg    *config.ClientConfig
	loc    *time.Location
	clock  clock.Clock
	cache  *syncclient.SQLCache
	client *syncclient.Client
	store  *syncclient.Store
	flush  func()
}

func (s *session) open(cmd *cobra.Command, args []string) error {
	s.cfg = config.LoadClient()
	s.flush = logger.Init(os.Stderr, logger.Options{
		Dev:         s.cfg.IsDevelopment(),
		SentryDSN:   s.cfg.SentryDSN,
		Environment: s.cfg.AppEnv,
	})

	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid NOOR_TIMEZONE %q: %w", s.cfg.Timezone, err)
	}
	s.loc = loc
	s.clock = clock.SystemClock{}

	s.cache, err = syncclient.OpenCache(s.cfg.CachePath, s.clock)
	if err != nil {
		return err
	}

	s.client = syncclient.NewClient(s.cfg.APIURL, s.cfg.Token, requestTimeout)
	s.store = syncclient.NewStore(s.cache, s.client, s.clock, loc, s.cfg.SyncDebounce)
	return nil
}

// close drains pending writes so nothing queued is lost on exit
func (s *session) close(cmd *cobra.Command, args []string) error {
	if s.store != nil {
		s.store.Flush()
		for _, key := range s.store.Unlocked() {
			fmt.Fprintf(cmd.OutOrStdout(), "🏆 নতুন অর্জন: %s\n", key)
		}
	}

	if s.cache != nil {
		err := s.cache.Close()
		if err != nil {
			slog.Warn("failed to close cache", "error", err)
		}
	}

	if s.flush != nil {
		s.flush()
	}
	return nil
}

func RootCmd() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:                "noor",
		Short:              "Track daily worship goals offline-first",
		SilenceUsage:       true,
		PersistentPreRunE:  s.open,
		PersistentPostRunE: s.close,
	}

	rootCmd.AddCommand(GoalsCmd(s))
	rootCmd.AddCommand(ProgressCmd(s))
	rootCmd.AddCommand(ToggleCmd(s))
	rootCmd.AddCommand(GoalCmd(s))
	rootCmd.AddCommand(CityCmd(s))
	rootCmd.AddCommand(NotifyCmd(s))
	rootCmd.AddCommand(QuranCmd(s))
	rootCmd.AddCommand(AchievementsCmd(s))
	rootCmd.AddCommand(StatsCmd(s))
	rootCmd.AddCommand(RemindCmd(s))

	return rootCmd
}
