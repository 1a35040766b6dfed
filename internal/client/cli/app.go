package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/akoval/terplink/internal/client/cache"
	"github.com/akoval/terplink/internal/client/config"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/client/services"
	"github.com/akoval/terplink/internal/logging"
)

// App wires the gateway, cache and services together behind the REPL
// command surface.
type App struct {
	config       *config.Config
	session      *services.Session
	appointments *services.AppointmentService
	offers       *services.OfferService
	directory    *services.DirectoryService
	profile      *services.ProfileService
	log          logging.Logger
	reader       *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) *App {
	store := cache.New()
	session := services.NewSession(store, log)
	gw := gateway.NewHTTPGateway(c.APIBaseURL, c.RequestTimeout, session, log)

	return &App{
		config:       c,
		session:      session,
		appointments: services.NewAppointmentService(gw, store, session, log),
		offers:       services.NewOfferService(gw, store, session, log),
		directory:    services.NewDirectoryService(gw, store, log),
		profile:      services.NewProfileService(gw, log),
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to TerpLink CLI (type 'help' for commands)")

	go a.StartOfferPollWatcher(ctx, a.config.OfferPollInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isSignedIn() bool {
	return a.session.SignedIn()
}

func (a *App) getStatus() string {
	if uid := a.session.UserID(); uid != "" {
		return "(" + uid + ")"
	}
	return "(signed out)"
}

// fail renders err as a one-line message and passes it back up. All
// user-facing error text goes through here.
func (a *App) fail(err error) error {
	printlnFn(userMessage(err))
	return err
}

// StartOfferPollWatcher keeps the available-offer set warm while the user
// is signed in, so the offers screen opens on current data.
func (a *App) StartOfferPollWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isSignedIn() {
				continue
			}
			pollCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if _, err := a.offers.Available(pollCtx); err != nil {
				a.log.Debug(pollCtx, "offer poll failed", "error", err)
			}
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
