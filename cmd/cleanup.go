package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/gencache"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired generation cache entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		removed, err := gencache.Sweep(cmd.Context(), st.Cache(), cfg.Cache.CleanupHorizon)
		if err != nil {
			return err
		}

		fmt.Printf("Removed %d cache entr(ies)\n", removed)
		return nil
	},
}
