package cmd

import (
	"fmt"

	"github.com/Rahik-516/Noor-Web/internal/prayer"
	"github.com/spf13/cobra"
)

func CityCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "city [name]",
		Short: "Show or select the city for prayer times",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				_, err := s.store.SetCity(args[0])
				if err != nil {
					return err
				}
			}

			times := s.store.PrayerTimes(cmd.Context())
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "%s  %s  (%s)\n", times.City, times.Date, times.Source)
			for i, at := range times.Timings.Ordered() {
				marker := " "
				if i == times.ActiveIndex {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %-8s %s\n", marker, prayer.Names[i], at)
			}
			fmt.Fprintf(w, "সেহরি %s  ইফতার %s\n", times.Sehri, times.Iftar)
			return nil
		},
	}
}
