package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/cards"
	"github.com/studykit/studykit/internal/review"
	"github.com/studykit/studykit/internal/srs"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Record one card review",
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")
		document, _ := cmd.Flags().GetString("document")
		card, _ := cmd.Flags().GetString("card")
		correct, _ := cmd.Flags().GetBool("correct")
		confidence, _ := cmd.Flags().GetInt("confidence")
		timeMs, _ := cmd.Flags().GetInt("time-ms")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := review.NewService(st, nil)
		p, err := svc.RecordReview(cmd.Context(), learner, cards.ReviewInput{
			CardID:         card,
			DocumentID:     document,
			Correct:        correct,
			Confidence:     confidence,
			ResponseTimeMs: timeMs,
		}, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Recorded. Next review in %d day(s) on %s (ease %.2f, box %d)\n",
			p.IntervalDays,
			p.DueAt.Local().Format("2006-01-02"),
			p.EaseFactor,
			srs.BoxForInterval(p.IntervalDays),
		)
		if p.Mastered {
			fmt.Println("Card mastered.")
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().String("learner", "", "Learner id")
	reviewCmd.Flags().String("document", "", "Document id")
	reviewCmd.Flags().String("card", "", "Card id")
	reviewCmd.Flags().Bool("correct", false, "Whether the answer was correct")
	reviewCmd.Flags().Int("confidence", 3, "Self-reported confidence (1-5)")
	reviewCmd.Flags().Int("time-ms", 0, "Response time in milliseconds")
	reviewCmd.MarkFlagRequired("learner")
	reviewCmd.MarkFlagRequired("document")
	reviewCmd.MarkFlagRequired("card")
}
