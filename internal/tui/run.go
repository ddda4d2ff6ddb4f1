package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the pot TUI and blocks until the user quits or the context is
// canceled.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Service == nil {
		return fmt.Errorf("service is required")
	}
	if cfg.Updater == nil {
		return fmt.Errorf("updater is required")
	}
	if !cfg.Period.Valid() {
		return fmt.Errorf("invalid period %s", cfg.Period)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	m := newModel(ctx, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if fm, ok := final.(Model); ok {
		fm.editor.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
