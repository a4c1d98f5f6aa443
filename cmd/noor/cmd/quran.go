package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/spf13/cobra"
)

func QuranCmd(s *session) *cobra.Command {
	quranCmd := &cobra.Command{
		Use:   "quran",
		Short: "Show or change Quran tracking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTracking(cmd, s.store.Tracking())
		},
	}

	var page, dailyGoal, todayPages int
	pagesCmd := &cobra.Command{
		Use:   "pages",
		Short: "Track by current page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveTracking(cmd, s, model.PagesMode{
				CurrentPage: page,
				DailyGoal:   dailyGoal,
				TodayPages:  todayPages,
				LastDate:    s.store.Today(),
			})
		},
	}
	pagesCmd.Flags().IntVar(&page, "page", 1, "Current page")
	pagesCmd.Flags().IntVar(&dailyGoal, "goal", 5, "Pages per day")
	pagesCmd.Flags().IntVar(&todayPages, "today", 0, "Pages read today")

	var surah, fromAyah, toAyah int
	surahCmd := &cobra.Command{
		Use:   "surah",
		Short: "Track by surah and ayah range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveTracking(cmd, s, model.SurahMode{
				Surah:    surah,
				FromAyah: fromAyah,
				ToAyah:   toAyah,
				LastRead: s.store.Today(),
			})
		},
	}
	surahCmd.Flags().IntVar(&surah, "surah", 1, "Surah number")
	surahCmd.Flags().IntVar(&fromAyah, "from", 1, "First ayah read")
	surahCmd.Flags().IntVar(&toAyah, "to", 1, "Last ayah read")

	var dailyPages int
	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Track pages against a daily goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveTracking(cmd, s, model.DailyMode{
				DailyGoalPages: dailyGoal,
				DailyPages:     dailyPages,
				DailyLastDate:  s.store.Today(),
			})
		},
	}
	dailyCmd.Flags().IntVar(&dailyGoal, "goal", 5, "Pages per day")
	dailyCmd.Flags().IntVar(&dailyPages, "pages", 0, "Pages read today")

	var undo bool
	juzCmd := &cobra.Command{
		Use:   "juz [number]",
		Short: "Track completed juz, or mark one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := s.store.SaveTracking(model.JuzMode{})
			if err != nil {
				return err
			}

			if len(args) == 1 {
				juz, err := strconv.Atoi(args[0])
				if err != nil || juz < 1 || juz > 30 {
					return fmt.Errorf("juz must be between 1 and 30")
				}
				err = s.client.SetJuz(cmd.Context(), juz, !undo)
				if err != nil {
					return err
				}
			}

			reply, err := s.client.JuzProgress(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "সম্পন্ন পারা (%d/30): %v\n", len(reply.CompletedJuz), reply.CompletedJuz)
			return nil
		},
	}
	juzCmd.Flags().BoolVar(&undo, "undo", false, "Mark the juz as not completed")

	quranCmd.AddCommand(pagesCmd, surahCmd, dailyCmd, juzCmd)
	return quranCmd
}

func saveTracking(cmd *cobra.Command, s *session, tracking model.TrackingMode) error {
	err := s.store.SaveTracking(tracking)
	if err != nil {
		return err
	}
	return printTracking(cmd, s.store.Tracking())
}

func printTracking(cmd *cobra.Command, tracking model.QuranTracking) error {
	payload, err := json.Marshal(tracking.Tracking)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tracking.Tracking.Mode(), payload)
	return nil
}
