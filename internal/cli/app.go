// Package cli is the terminal client: the stand-in for the mobile screens.
// It wires the session manager and services together and reacts to their
// state; all real logic lives below it.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/avezina/givehub/internal/api"
	"github.com/avezina/givehub/internal/config"
	"github.com/avezina/givehub/internal/logging"
	"github.com/avezina/givehub/internal/services"
	"github.com/avezina/givehub/internal/session"
	"github.com/avezina/givehub/internal/store"
)

type App struct {
	config    *config.Config
	apiClient api.Client
	store     store.Store
	sessions  *session.Manager
	donations *services.DonationService
	campaigns *services.CampaignService
	log       logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	sessions := session.NewManager(apiClient, st, log)

	return &App{
		config:    cfg,
		apiClient: apiClient,
		store:     st,
		sessions:  sessions,
		donations: services.NewDonationService(apiClient, sessions, log),
		campaigns: services.NewCampaignService(apiClient),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// openStore builds the durable store the config asks for, sealing it when a
// passphrase is configured.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	var st store.Store
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		s, err := store.OpenSQLite(ctx, cfg.StorePath)
		if err != nil {
			return nil, err
		}
		st = s
	case config.StoreDriverFile:
		st = store.NewFileStore(cfg.StorePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.StorePassphrase != "" {
		st = store.NewSealedStore(st, []byte(cfg.StorePassphrase))
	}
	return st, nil
}

// Run restores any persisted session and drops into the REPL. Returns when
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.apiClient.Close()
	defer a.store.Close()

	state := a.sessions.Initialize(ctx)
	if state == session.StateAuthenticated {
		if s, ok := a.sessions.Current(); ok {
			fmt.Fprintf(a.out, "Welcome back, %s!\n", s.Name)
		}
	}

	fmt.Fprintln(a.out, "GiveHub terminal client (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

// status renders the prompt segment showing who is signed in.
func (a *App) status() string {
	s, ok := a.sessions.Current()
	if !ok {
		return "signed out"
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Role)
}
