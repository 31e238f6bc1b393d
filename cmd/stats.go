package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning analytics for a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")
		document, _ := cmd.Flags().GetString("document")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		analyzer := analytics.NewAnalyzer(st.Reviews(), st.Cards(), st.Progress(), st.Sessions(), nil)
		a := analyzer.Analyze(cmd.Context(), learner, document, time.Now())

		fmt.Printf("Streak:       %d day(s)\n", a.StreakDays)
		fmt.Printf("Accuracy:     %.0f%% %s\n", a.Accuracy*100, trendArrow(a.AccuracyTrend))
		fmt.Printf("Confidence:   %.1f/5 %s\n", a.AvgConfidence, trendArrow(a.ConfidenceTrend))
		fmt.Printf("Speed:        %s\n", trendArrow(a.SpeedTrend))
		fmt.Printf("Mastered:     %d\n", a.MasteredCount)
		fmt.Printf("Struggling:   %d\n", a.StrugglingCount)
		fmt.Printf("Reviews:      %d\n", a.TotalReviews)
		fmt.Printf("Study time:   %s\n", (time.Duration(a.StudyTimeMs) * time.Millisecond).Round(time.Minute))

		if len(a.Topics) > 0 {
			fmt.Println("\nTopics:")
			for _, tp := range a.Topics {
				fmt.Printf("  %-20s  %.0f%%  (%d reviews)\n", tp.Topic, tp.Accuracy*100, tp.ReviewCount)
			}
		}
		return nil
	},
}

func trendArrow(t analytics.Trend) string {
	switch t {
	case analytics.TrendUp:
		return "↑"
	case analytics.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

func init() {
	statsCmd.Flags().String("learner", "", "Learner id")
	statsCmd.Flags().String("document", "", "Document id")
	statsCmd.MarkFlagRequired("learner")
	statsCmd.MarkFlagRequired("document")
}
