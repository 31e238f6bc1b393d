package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/review"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Summarize today's study workload for a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")
		document, _ := cmd.Flags().GetString("document")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := review.NewService(st, nil)
		rec := svc.Recommend(cmd.Context(), learner, document, time.Now())

		fmt.Printf("Due:         %d\n", rec.DueCount)
		fmt.Printf("New:         %d\n", rec.NewCount)
		fmt.Printf("Struggling:  %d\n", rec.StrugglingCount)
		fmt.Printf("Suggested session: %d cards\n", rec.RecommendedSessionSize)
		if len(rec.FocusTopics) > 0 {
			fmt.Printf("Focus on: %s\n", strings.Join(rec.FocusTopics, ", "))
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().String("learner", "", "Learner id")
	recommendCmd.Flags().String("document", "", "Document id")
	recommendCmd.MarkFlagRequired("learner")
	recommendCmd.MarkFlagRequired("document")
}
