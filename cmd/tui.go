package cmd

import (
	"fmt"

	"github.com/theirongolddev/iexpense/internal/logging"
	"github.com/theirongolddev/iexpense/internal/tui"
	"github.com/theirongolddev/iexpense/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The dashboard owns the terminal; save failures surface in its status bar.
	logger = logging.Discard()

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s.store, tui.Options{
		Currency:   s.currency,
		Categories: cfg.General.Categories,
		TypeFilter: flagType,
		ExportDir:  cfg.Export.Dir,
		Logger:     logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
