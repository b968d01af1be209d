package infra

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// NewLogger builds the root slog.Logger on a charmbracelet/log handler.
// Development gets debug level and caller reporting; everything else
// stays at info.
func NewLogger(appEnv string) *slog.Logger {
	level := charmlog.InfoLevel
	if appEnv == "development" {
		level = charmlog.DebugLevel
	}

	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"})
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"})

	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportCaller:    appEnv == "development",
		ReportTimestamp: true,
	})
	handler.SetStyles(styles)

	return slog.New(handler)
}
