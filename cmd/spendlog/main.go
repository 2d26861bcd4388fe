package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"spendlog/internal/cli"
	"spendlog/internal/service"
	"spendlog/internal/tui"
)

func main() {
	cli.LoadEnvFile()

	// The terminal UI owns stdout, so structured logs go to a file next
	// to the database.
	cfg := cli.LoadAndValidateConfig(cli.SetupLogger(os.Stderr, "error"))
	logPath := filepath.Join(filepath.Dir(cfg.DBPath), "spendlog.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		fmt.Fprintln(os.Stderr, "create log directory:", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := cli.SetupLogger(logFile, cfg.LogLevel)

	repo := cli.OpenRepository(logger, cfg)
	ledger := service.New(repo)
	defer ledger.Close()

	p := tea.NewProgram(tui.NewModel(ledger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "spendlog:", err)
		os.Exit(1)
	}
}
