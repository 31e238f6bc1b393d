package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/review"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Print the prioritized study queue for a document",
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")
		document, _ := cmd.Flags().GetString("document")
		size, _ := cmd.Flags().GetInt("size")

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if size <= 0 {
			size = cfg.Session.MaxSize
		}

		svc := review.NewService(st, nil)
		queue := svc.BuildSession(cmd.Context(), learner, document, size, time.Now())

		if len(queue) == 0 {
			fmt.Println("No cards to study.")
			return nil
		}

		fmt.Printf("%-4s  %-8s  %-40s  %s\n", "#", "Priority", "Question", "Reason")
		for i, sc := range queue {
			q := sc.Card.Question
			if len(q) > 40 {
				q = q[:37] + "..."
			}
			fmt.Printf("%-4d  %-8.0f  %-40s  %s\n", i+1, sc.Priority, q, sc.Reason)
		}
		return nil
	},
}

func init() {
	sessionCmd.Flags().String("learner", "", "Learner id")
	sessionCmd.Flags().String("document", "", "Document id")
	sessionCmd.Flags().Int("size", 0, "Maximum session size")
	sessionCmd.MarkFlagRequired("learner")
	sessionCmd.MarkFlagRequired("document")
}
