// Command turnos-admin is the terminal client for the help-desk shift
// management backend: session handling, the live status notification feed,
// the agent roster, attendance punching, and monthly grid exports.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hdops/turnos-admin/internal/api"
	"github.com/hdops/turnos-admin/internal/app"
	"github.com/hdops/turnos-admin/internal/auth"
	"github.com/hdops/turnos-admin/internal/credential"
	"github.com/hdops/turnos-admin/internal/model"
	"github.com/hdops/turnos-admin/internal/notify"
	"github.com/hdops/turnos-admin/internal/shell"
	"github.com/hdops/turnos-admin/internal/store"
	"github.com/hdops/turnos-admin/internal/ws"
	"github.com/hdops/turnos-admin/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "turnos-admin:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the configuration file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level})

	dbPath := filepath.Join(filepath.Dir(*configPath), "turnos-admin.db")
	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}
	defer db.Close()

	creds := credential.NewStore()
	authSvc := auth.NewService(cfg.API.BaseURL, creds, log)

	client := api.NewClient(
		cfg.API.BaseURL,
		authSvc.Token,
		log,
		api.WithTimeout(time.Duration(cfg.API.TimeoutSec)*time.Second),
		api.WithUnauthorizedHook(authSvc.Logout),
	)

	transport := ws.NewTransport(ws.Config{
		URL:            cfg.Socket.URL,
		Topic:          cfg.Socket.Topic,
		ReconnectDelay: time.Duration(cfg.Socket.ReconnectDelaySec) * time.Second,
		Heartbeat:      time.Duration(cfg.Socket.HeartbeatSec) * time.Second,
	}, log)

	notifications := notify.NewStore(db, cfg.Notifications.Max, log)
	orchestrator := shell.New(authSvc, transport, notifications,
		time.Duration(cfg.Socket.ReconnectDelaySec)*time.Second, log)

	root := app.New(app.Services{
		Auth:       authSvc,
		Transport:  transport,
		Notify:     notifications,
		Shell:      orchestrator,
		DB:         db,
		Agents:     api.NewAgentsClient(client),
		Teams:      api.NewTeamsClient(client),
		Turnos:     api.NewTurnosClient(client),
		Salario:    api.NewSalarioClient(client),
		Ponto:      api.NewPontoClient(client),
		Dashboard:  api.NewDashboardClient(client),
		Config:     cfg,
		ConfigPath: *configPath,
		Log:        log,
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
