package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NotifyCmd(s *session) *cobra.Command {
	var prayerOn, goalsOn, quranOn bool

	notifyCmd := &cobra.Command{
		Use:   "notify",
		Short: "Show or change reminder categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := s.store.Prefs()

			flags := cmd.Flags()
			if flags.Changed("prayer") {
				prefs.Prayer = prayerOn
			}
			if flags.Changed("goals") {
				prefs.Goals = goalsOn
			}
			if flags.Changed("quran") {
				prefs.Quran = quranOn
			}

			if flags.NFlag() > 0 {
				err := s.store.SetPrefs(prefs)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "prayer=%t goals=%t quran=%t\n", prefs.Prayer, prefs.Goals, prefs.Quran)
			return nil
		},
	}
	notifyCmd.Flags().BoolVar(&prayerOn, "prayer", true, "Remind before each prayer")
	notifyCmd.Flags().BoolVar(&goalsOn, "goals", true, "Remind about incomplete goals in the evening")
	notifyCmd.Flags().BoolVar(&quranOn, "quran", true, "Remind to read Quran in the afternoon")

	return notifyCmd
}
