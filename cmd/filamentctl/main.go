// filamentctl is the interactive front door of the filament advisor. It
// embeds the services in-process; configuration comes from FILAMENT_
// environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/filamentgenius/backend/internal/advisor"
	"github.com/filamentgenius/backend/internal/advisor/gemini"
	"github.com/filamentgenius/backend/internal/config"
	"github.com/filamentgenius/backend/internal/factory"
	"github.com/filamentgenius/backend/internal/identity"
	"github.com/filamentgenius/backend/internal/logger"
	"github.com/filamentgenius/backend/internal/project"
	"github.com/filamentgenius/backend/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "filamentctl",
	Short: "Filament advisor: accounts, saved projects and AI recommendations",
}

// app bundles the wired services for a single command invocation.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    store.Store
	identity *identity.Service
	projects *project.Service
}

// newApp wires config, storage and the core services. The advisor gateway is
// wired separately because it needs an API key most commands don't.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	log := logger.New("filamentctl")

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		identity: identity.New(st, log),
		projects: project.New(st, log),
	}, nil
}

// newGemini wires the raw Gemini client, used directly for health probes.
func (a *app) newGemini() (*gemini.Client, error) {
	return gemini.NewClient(gemini.Options{
		APIKey:  a.cfg.GeminiAPIKey,
		Model:   a.cfg.GeminiModel,
		BaseURL: a.cfg.GeminiBaseURL,
		Timeout: time.Duration(a.cfg.AdvisorTimeoutSeconds) * time.Second,
	}, a.log)
}

// newGateway wires the Gemini-backed advisor gateway.
func (a *app) newGateway() (*advisor.Gateway, error) {
	client, err := a.newGemini()
	if err != nil {
		return nil, err
	}
	return advisor.NewGateway(client, a.log), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
