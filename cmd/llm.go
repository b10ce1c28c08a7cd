package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/intervu-dev/intervu/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Show the configured LLM provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, ok := llm.DiscoverConfig()
		if !ok {
			fmt.Println("No LLM provider configured.")
			fmt.Println("Set one of: ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY")
			return nil
		}

		provider, err := llm.NewProvider(cmd.Context(), cfg, nil)
		if err != nil {
			return fmt.Errorf("build provider: %w", err)
		}

		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("Model:    %s\n", provider.ModelID())

		ping, _ := cmd.Flags().GetBool("ping")
		if !ping {
			return nil
		}

		resp, err := provider.Generate(cmd.Context(), llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 10,
		})
		if err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}
		fmt.Printf("Ping:     ok (%d tokens out)\n", resp.Usage.OutputTokens)
		return nil
	},
}

func init() {
	llmCmd.Flags().Bool("ping", false, "Send a minimal request to verify the provider works")
}
