package main

import (
	"github.com/spf13/cobra"
)

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Open the interactive 3D tour",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		return runTour(cmd.Context(), e)
	},
}

func init() {
	rootCmd.AddCommand(tourCmd)
}
