package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/lifecycle"

	"github.com/daybook-app/daybook/pkg/adapters/chainpress"
	"github.com/daybook-app/daybook/pkg/adapters/diskstore"
	"github.com/daybook-app/daybook/pkg/adapters/ollama"
	"github.com/daybook-app/daybook/pkg/adapters/sqlite"
	"github.com/daybook-app/daybook/pkg/adapters/weatherapi"
	"github.com/daybook-app/daybook/pkg/core"
	"github.com/daybook-app/daybook/pkg/service"
	"github.com/daybook-app/daybook/pkg/store"
)

// Stopper is the shutdown surface of the settings watch worker.
type Stopper interface {
	Stop(ctx context.Context) error
}

// App wires adapters, services, and stores into one running application.
type App struct {
	Notes    *store.Notes
	Settings *store.Settings
	Weather  *store.Weather
	Chat     *store.Chat
	UI       *store.UI
	STT      *store.STT
	Broker   *store.Broker

	NotesService   *service.Notes
	AIService      *service.AI
	WeatherService *service.Weather
	PublishService *service.Publish

	log     *slog.Logger
	repo    core.NotesRepository
	records core.RecordStore
	watch   bool
	watcher Stopper
	cancel  context.CancelFunc
}

// New builds an application rooted at the given data directory. Default
// adapters are a SQLite notes database and an on-disk record store under
// that directory; every adapter can be swapped through options.
func New(dataDir string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	log := o.logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	repo := o.repository
	if repo == nil {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		r, err := sqlite.Open(filepath.Join(dataDir, "daybook.db"), log)
		if err != nil {
			return nil, err
		}
		repo = r
	}

	records := o.records
	if records == nil {
		records = diskstore.New(filepath.Join(dataDir, "store"), log)
	}

	aiClient := o.ai
	if aiClient == nil {
		aiClient = ollama.New()
	}
	weatherClient := o.weather
	if weatherClient == nil {
		weatherClient = weatherapi.New()
	}
	publisher := o.publisher
	if publisher == nil {
		publisher = chainpress.New()
	}

	notesSvc := service.NewNotes(repo, log)
	aiSvc := service.NewAI(aiClient, log)
	weatherSvc := service.NewWeather(weatherClient, log)
	publishSvc := service.NewPublish(publisher, log)

	broker := store.NewBrokerBuffered(log, o.buffer)
	settings := store.NewSettings(records, o.scheme, broker, log)

	app := &App{
		Notes:    store.NewNotes(notesSvc, broker, log),
		Settings: settings,
		Weather:  store.NewWeather(weatherSvc, settings, log),
		Chat:     store.NewChat(aiSvc, settings, records, log),
		UI:       store.NewUI(),
		STT:      store.NewSTT(o.recognizer, log),
		Broker:   broker,

		NotesService:   notesSvc,
		AIService:      aiSvc,
		WeatherService: weatherSvc,
		PublishService: publishSvc,

		log:     log,
		repo:    repo,
		records: records,
		watch:   o.watch,
	}
	return app, nil
}

// Start loads settings, optionally begins watching the record directory
// for external edits, and warms the weather context.
func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.Settings.Initialize(runCtx)

	if a.watch {
		if err := a.startSettingsWatch(runCtx); err != nil {
			a.log.Warn("settings watch unavailable", "error", err)
		}
	}

	a.Weather.Initialize(runCtx)
	a.Notes.LoadNotesForDate(runCtx, a.Notes.CurrentDate())
	return nil
}

// startSettingsWatch reloads the settings store whenever its record file
// changes on disk. Only the default on-disk record store supports this.
func (a *App) startSettingsWatch(ctx context.Context) error {
	ds, ok := a.records.(*diskstore.Store)
	if !ok {
		return fmt.Errorf("record store does not support watching")
	}

	events := make(chan core.Event, 16)
	watcher, err := ds.Watch(ctx, events)
	if err != nil {
		return err
	}
	a.watcher = watcher

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				if e.ID == store.SettingsKey {
					a.Settings.Reload(ctx)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		a.log.Error("settings watch bridge failed", "error", err)
	}))
	return nil
}

// Close stops background work and releases storage handles.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.watcher != nil {
		_ = a.watcher.Stop(context.Background())
	}
	a.STT.Stop()
	a.UI.Close()
	a.Settings.Close()
	a.Broker.Close()
	return a.repo.Close()
}
