package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/icrowley/fake"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// app holds everything a request needs: config, the shared HTTP client, the
// local store, and the catalogs loaded at startup. The directory is
// immutable after startup; the event list is an atomic snapshot swapped on
// refresh.
type app struct {
	config    *Config
	client    *http.Client
	db        *badger.DB
	directory Directory
	emailURL  string
	limiter   *rate.Limiter

	eventsMu  sync.RWMutex
	eventList []EventRecord

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

func newApp(cfg *Config, db *badger.DB) *app {
	perHour := cfg.MaxRequestsPerHour
	if perHour < 1 {
		perHour = 1
	}
	return &app{
		config:   cfg,
		client:   &http.Client{Timeout: 30 * time.Second},
		db:       db,
		emailURL: emailSendURL,
		limiter:  rate.NewLimiter(rate.Every(time.Hour/time.Duration(perHour)), perHour),
		inflight: make(map[string]struct{}),
	}
}

func (a *app) events() []EventRecord {
	a.eventsMu.RLock()
	defer a.eventsMu.RUnlock()
	return a.eventList
}

func (a *app) setEvents(events []EventRecord) {
	a.eventsMu.Lock()
	defer a.eventsMu.Unlock()
	a.eventList = events
}

func (a *app) markInflight(email string) bool {
	a.inflightMu.Lock()
	defer a.inflightMu.Unlock()
	if _, pending := a.inflight[email]; pending {
		return false
	}
	a.inflight[email] = struct{}{}
	return true
}

func (a *app) clearInflight(email string) {
	a.inflightMu.Lock()
	defer a.inflightMu.Unlock()
	delete(a.inflight, email)
}

func main() {
	simulate := flag.Bool("simulate", false, "send one synthetic submission through the pipeline and exit")
	flag.Parse()

	// Load .env
	godotenv.Load()
	setupLogging(os.Getenv("DEBUG") == "true")

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to Load Config")
	}

	dbPath := cfg.DBPath
	if *simulate {
		dbPath = "" // in-memory store, nothing persisted
	}
	db, err := openStore(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to Open Store")
	}
	defer db.Close()

	a := newApp(cfg, db)
	a.directory = LoadDirectory(cfg.AffiliationsPath)
	if len(a.directory) == 0 {
		log.Warn().Msg("Affiliation Directory Is Empty")
	}

	writerDone := startJournalWriter(db)

	ctx := context.Background()
	events, err := a.fetchEventsCached(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Initial Event Fetch Failed, Starting With Empty Catalog")
		events = []EventRecord{}
	}
	a.setEvents(events)

	if *simulate {
		a.runSimulation(ctx)
		close(journalEntries)
		<-writerDone
		return
	}

	server := &http.Server{Addr: cfg.ListenAddr, Handler: a.routes()}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server Error")
		}
	}()
	log.Info().Str("addr", cfg.ListenAddr).Int("events", len(events)).Msg("Server Started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown Error")
	}

	close(journalEntries)
	<-writerDone
}

// runSimulation pushes one synthetic submission through the full pipeline,
// config checks and all, without needing a browser.
func (a *app) runSimulation(ctx context.Context) {
	events := a.events()
	if len(events) == 0 {
		log.Fatal().Msg("No Events Available to Simulate With")
	}

	email := strings.ToLower(fmt.Sprintf("%s.%s@example.edu", fake.FirstName(), fake.LastName()))
	sub := submissionRequest{Email: email, Affiliation: "academic", EventID: events[0].ID}

	log.Info().Str("email", email).Str("event", events[0].Title).Msg("Simulating Submission")
	result := a.Process(ctx, sub)
	log.Info().Str("state", result.State.String()).Str("message", result.Message).Msg("Simulation Complete")
}
