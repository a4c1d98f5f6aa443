package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Rahik-516/Noor-Web/internal/prayer"
	"github.com/Rahik-516/Noor-Web/internal/syncclient"
	"github.com/spf13/cobra"
)

func GoalsCmd(s *session) *cobra.Command {
	var date string

	goalsCmd := &cobra.Command{
		Use:   "goals",
		Short: "Show goals and progress for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = s.store.Today()
			}

			// Refresh the schedule so gates reflect today's timings
			times := s.store.PrayerTimes(cmd.Context())

			snap, err := s.store.Read(cmd.Context(), date)
			if err != nil {
				return err
			}

			printSnapshot(cmd.OutOrStdout(), snap, s.store.Gates(), date == s.store.Today())
			if date == s.store.Today() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nচলমান ওয়াক্ত: %s (%s)\n", times.ActivePrayer, times.City)
			}
			return nil
		},
	}
	goalsCmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")

	return goalsCmd
}

func printSnapshot(w io.Writer, snap *syncclient.Snapshot, gates map[string]prayer.State, today bool) {
	fmt.Fprintf(w, "আজকের লক্ষ্য  %s", snap.Date)
	if snap.Offline {
		fmt.Fprint(w, "  (অফলাইন)")
	}
	fmt.Fprintln(w)

	values := make(map[string]int, len(snap.Progress))
	done := make(map[string]bool, len(snap.Progress))
	for _, p := range snap.Progress {
		values[p.GoalID] = p.CompletedValue
		done[p.GoalID] = p.Completed
	}

	for _, goal := range snap.Settings {
		mark := "[ ]"
		switch {
		case !goal.Enabled:
			mark = "[-]"
		case done[goal.ID]:
			mark = "[x]"
		case today && gates[goal.ID] == prayer.StateFuture:
			mark = "[🔒]"
		}
		fmt.Fprintf(w, "%s %-20s %d/%d %s  (%s)\n", mark, goal.Title, values[goal.ID], goal.TargetValue, goal.Unit, goal.ID)
	}
}

func ProgressCmd(s *session) *cobra.Command {
	var date string
	var done bool

	progressCmd := &cobra.Command{
		Use:   "progress <goal-id> [value]",
		Short: "Record progress for a goal",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = s.store.Today()
			}

			value := 0
			if len(args) == 2 {
				var err error
				value, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("value must be a number: %w", err)
				}
			}
			if len(args) == 1 && !done {
				return errors.New("give a value or --done")
			}

			// Load the catalog so the goal is known locally
			_, err := s.store.Read(cmd.Context(), date)
			if err != nil {
				return err
			}
			s.store.PrayerTimes(cmd.Context())

			row, err := s.store.Write(cmd.Context(), date, args[0], value, done)
			if errors.Is(err, syncclient.ErrGoalLocked) {
				return errors.New("এই ওয়াক্ত এখনো শুরু হয়নি")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d (সম্পন্ন: %t)\n", row.GoalID, row.CompletedValue, row.Completed)
			return nil
		},
	}
	progressCmd.Flags().StringVar(&date, "date", "", "Day to record (YYYY-MM-DD, default today)")
	progressCmd.Flags().BoolVar(&done, "done", false, "Mark the goal completed")

	return progressCmd
}

func ToggleCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <goal-id>",
		Short: "Enable or disable a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.store.Read(cmd.Context(), s.store.Today())
			if err != nil {
				return err
			}

			goal, err := s.store.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: enabled=%t\n", goal.Title, goal.Enabled)
			return nil
		},
	}
}

func GoalCmd(s *session) *cobra.Command {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage custom goals",
	}

	var target int
	var unit string
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a custom goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.store.Read(cmd.Context(), s.store.Today())
			if err != nil {
				return err
			}

			goal, err := s.store.AddGoal(cmd.Context(), args[0], target, unit)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%d %s)\n", goal.Title, goal.TargetValue, goal.Unit)
			return nil
		},
	}
	addCmd.Flags().IntVar(&target, "target", 1, "Daily target value")
	addCmd.Flags().StringVar(&unit, "unit", "", "Unit label")

	rmCmd := &cobra.Command{
		Use:   "rm <goal-id>",
		Short: "Remove a goal and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := s.store.Read(cmd.Context(), s.store.Today())
			if err != nil {
				return err
			}

			err = s.store.RemoveGoal(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	goalCmd.AddCommand(addCmd, rmCmd)
	return goalCmd
}
