package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func AchievementsCmd(s *session) *cobra.Command {
	var check bool

	achievementsCmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if check {
				unlocked, err := s.client.CheckAchievements(cmd.Context())
				if err != nil {
					return err
				}
				for _, key := range unlocked {
					fmt.Fprintf(w, "🏆 নতুন অর্জন: %s\n", key)
				}
			}

			statuses, err := s.client.Achievements(cmd.Context())
			if err != nil {
				return err
			}

			unlocked := 0
			category := ""
			for _, a := range statuses {
				if a.CategoryLabel != category {
					category = a.CategoryLabel
					fmt.Fprintf(w, "\n%s\n", category)
				}
				mark := "  "
				if a.Unlocked {
					mark = a.Emoji
					unlocked++
				}
				fmt.Fprintf(w, "%s %s - %s\n", mark, a.Title, a.Description)
			}
			fmt.Fprintf(w, "\n%d/%d অর্জিত\n", unlocked, len(statuses))
			return nil
		},
	}
	achievementsCmd.Flags().BoolVar(&check, "check", false, "Evaluate unlock conditions first")

	return achievementsCmd
}

func StatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := s.client.Stats(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "মোট সম্পন্ন লক্ষ্য:   %d\n", stats.TotalGoalsCompleted)
			fmt.Fprintf(w, "মোট সালাত:          %d\n", stats.TotalPrayersCompleted)
			fmt.Fprintf(w, "কুরআন তিলাওয়াত:     %d\n", stats.QuranPagesCompleted)
			fmt.Fprintf(w, "সম্পন্ন পারা:        %d\n", stats.QuranJuzCompleted)
			fmt.Fprintf(w, "ধারাবাহিকতা:        %d দিন\n", stats.CurrentStreak)
			fmt.Fprintf(w, "আজকের অগ্রগতি:      %d%%\n", stats.GoalCompletionPercentageToday)
			return nil
		},
	}
}
