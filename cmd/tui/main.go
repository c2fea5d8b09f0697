package main

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/td0m/listopia/internal/config"
	"github.com/td0m/listopia/internal/logging"
	"github.com/td0m/listopia/pkg/persist"
	"go.uber.org/zap"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var (
	filePath   = flag.String("file", "", "Path to task file (overrides config)")
	configPath = flag.String("config", "", "Path to a TOML config file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	check(err)
	if *filePath != "" {
		cfg.File = *filePath
	}
	check(cfg.Validate())

	log, err := logging.ForTerminalUI(cfg.Log)
	check(err)
	defer log.Sync()
	log.Info("starting", zap.String("file", cfg.File))

	a := newApp(persist.InJSON(cfg.File), log)
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err = p.Run()
	check(err)
	fmt.Println("\n👋 Goodbye!")
}
