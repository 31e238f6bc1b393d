package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/gen"
	"github.com/studykit/studykit/internal/gencache"
	"github.com/studykit/studykit/internal/llm"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate flashcards for a document from a source file",
	RunE: func(cmd *cobra.Command, args []string) error {
		document, _ := cmd.Flags().GetString("document")
		path, _ := cmd.Flags().GetString("file")
		count, _ := cmd.Flags().GetInt("count")

		material, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read source file: %w", err)
		}

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		llmCfg := cfg.ToLLM()
		if err := llmCfg.Validate(); err != nil {
			if discovered, ok := llm.DiscoverConfig(); ok {
				llmCfg = discovered
			} else {
				return err
			}
		}

		generator, err := llm.NewGenerator(cmd.Context(), llmCfg, st.Usage())
		if err != nil {
			return err
		}
		cached := gencache.New(generator, st.Cache(), st.Usage(), nil,
			gencache.WithTTL(cfg.Cache.TTL))
		// Drain the async cache write before the process (and DB) go away.
		defer cached.Flush()

		generated, err := gen.Generate(cmd.Context(), cached, st.Cards(), document, string(material), count)
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d card(s) for document %s:\n", len(generated), document)
		for _, c := range generated {
			fmt.Printf("  [%s] %s\n", c.TopicOf(), c.Question)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("document", "", "Document id to attach cards to")
	generateCmd.Flags().String("file", "", "Path to the source material")
	generateCmd.Flags().Int("count", gen.DefaultCount, "Number of cards to generate")
	generateCmd.MarkFlagRequired("document")
	generateCmd.MarkFlagRequired("file")
}
