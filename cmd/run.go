package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/intervu-dev/intervu/internal/affect"
	"github.com/intervu-dev/intervu/internal/app"
	"github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/llm"
	"github.com/intervu-dev/intervu/internal/profile"
	"github.com/intervu-dev/intervu/internal/report"
	"github.com/intervu-dev/intervu/internal/sandbox"
	ivscreen "github.com/intervu-dev/intervu/internal/screens/interview"
	"github.com/intervu-dev/intervu/internal/speech"
	"github.com/intervu-dev/intervu/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// Optional .env for API keys; absence is fine.
	_ = godotenv.Load()

	logger := newLogger()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
	if err != nil {
		return fmt.Errorf("no LLM provider configured (set ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY): %w", err)
	}

	presetPath, err := profile.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve preset path: %w", err)
	}
	presets, err := profile.Load(presetPath)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		if !presets.Promote(name) {
			return fmt.Errorf("unknown preset %q (see %s)", name, presetPath)
		}
	}

	deps := ivscreen.Deps{
		Provider: provider,
		Sessions: st.Sessions(),
		Logger:   logger,
		Analyzer: affect.NewClient(),
		Exec:     sandbox.NewClient(""),
		Docs:     report.NewHTTPDocStore(),
		Config:   interview.DefaultConfig(),
	}

	return app.Run(app.Options{
		Deps:    deps,
		Presets: presets,
		Acquire: acquireDevices,
	})
}

// acquireDevices grants the session's speech and camera capabilities. The
// terminal build uses the scripted engine; browser-grade audio/video lives
// behind the same interfaces.
func acquireDevices() (*speech.Devices, error) {
	return speech.AcquireScripted(), nil
}

// newLogger writes debug logs to intervu.log when INTERVU_DEBUG is set; the
// TUI owns the terminal, so nothing is logged there.
func newLogger() *log.Logger {
	out := io.Discard
	if os.Getenv("INTERVU_DEBUG") != "" {
		if f, err := os.OpenFile("intervu.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			out = f
		}
	}
	logger := log.New(out)
	logger.SetLevel(log.DebugLevel)
	return logger
}
