package appflow

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"

	"github.com/a0929639992ca-hub/OTT/internal/util"
)

// EnsureCredential prompts for a Gemini API key when none is configured
// and optionally persists it to .env for the next run. Leaving the field
// empty continues without a key; searches will then fail with the
// credential message until one is set.
func EnsureCredential() error {
	if os.Getenv("GEMINI_API_KEY") != "" {
		return nil
	}

	var (
		key  string
		save bool
	)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("輸入 Gemini API 金鑰").
				Description("可於 Google AI Studio 取得。留空則先進入主畫面。").
				EchoMode(huh.EchoModePassword).
				Value(&key),
			huh.NewConfirm().
				Title("將金鑰儲存到目前目錄的 .env？").
				Value(&save),
		),
	)
	if err := form.Run(); err != nil {
		return errors.Wrap(err, "reading API key")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if err := os.Setenv("GEMINI_API_KEY", key); err != nil {
		return errors.Wrap(err, "setting GEMINI_API_KEY")
	}
	if save {
		if err := appendEnvKey(".env", key); err != nil {
			util.Warn("could not persist API key", "error", err)
		}
	}
	return nil
}

func appendEnvKey(path, key string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrap(err, "opening .env")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			util.Debug("Failed to close .env:", closeErr)
		}
	}()

	if _, err := fmt.Fprintf(f, "GEMINI_API_KEY=%s\n", key); err != nil {
		return errors.Wrap(err, "writing .env")
	}
	return nil
}
