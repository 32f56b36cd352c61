package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/api"
	"github.com/minaret/minaret/internal/audio"
	"github.com/minaret/minaret/internal/provider"
	"github.com/minaret/minaret/internal/server"
	"github.com/minaret/minaret/internal/sink"
	"github.com/minaret/minaret/pkg/azanlib"
	"github.com/minaret/minaret/pkg/logger"
)

// DaemonComponents holds all initialized daemon components, allowing
// unified initialization and cleanup.
type DaemonComponents struct {
	Store    *provider.Store
	Schedule *azanlib.Schedule
	Api      *api.Api
	Server   *server.Server
	logger   logger.Logger
}

// Close releases all daemon component resources in reverse order of
// initialization.
func (c *DaemonComponents) Close() {
	c.logger.Info("Shutting down daemon...")
	if c.Api != nil {
		c.Api.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
	c.logger.Info("Daemon stopped")
}

// initDaemonComponents initializes all daemon components with the provided
// logger. On error, any partially initialized components are cleaned up
// before returning.
var initDaemonComponents = func(log logger.Logger, configPath string) (*DaemonComponents, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.location()
	if err != nil {
		log.Error("Invalid timezone %q: %v", cfg.Provider.Timezone, err)
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		log.Error("Store directory creation failed: %v", err)
		return nil, err
	}
	store, err := provider.OpenStore(cfg.Store.Path)
	if err != nil {
		log.Error("Store initialization failed: %v", err)
		return nil, err
	}

	prov, err := provider.New(provider.Config{
		URL:      cfg.Provider.URL,
		Location: loc,
		Enabled:  enabledFlags(cfg.Schedule.Enabled),
		Store:    store,
		Log:      log,
	})
	if err != nil {
		log.Error("Provider initialization failed: %v", err)
		store.Close()
		return nil, err
	}

	cache, err := audio.NewCache(audio.Config{
		Dir:     cfg.Audio.Dir,
		BaseURL: cfg.mediaBaseURL(),
		Log:     log,
	})
	if err != nil {
		log.Error("Audio cache initialization failed: %v", err)
		store.Close()
		return nil, err
	}
	cache.Prepare(context.Background(), audioSources(cfg))

	player, err := sink.New(sink.Config{
		Endpoint: cfg.Player.Endpoint,
		Token:    cfg.Player.Token,
		Log:      log,
	})
	if err != nil {
		log.Error("Player initialization failed: %v", err)
		store.Close()
		return nil, err
	}

	sched, err := azanlib.NewSchedule(azanlib.ScheduleConfig{
		Provider:     prov,
		Audio:        cache,
		Sink:         player,
		Offset:       time.Duration(cfg.Schedule.OffsetMinutes) * time.Minute,
		Location:     loc,
		ResetTimeout: cfg.Schedule.ResetTimeout,
		Log:          log,
		PlayLog:      store,
	})
	if err != nil {
		log.Error("Schedule initialization failed: %v", err)
		store.Close()
		return nil, err
	}

	stdLog := logger.ToStdLogger(log)
	notifier := server.NewRPCNotifier(stdLog)
	rpc := server.NewRPCServer(&server.RPCConfig{
		Secret:    cfg.RPC.Secret,
		Version:   currentBuildArgs.Version,
		Commit:    currentBuildArgs.Commit,
		BuildType: currentBuildArgs.BuildType,
	}, sched, notifier)
	ws := server.NewWebServer(stdLog, sched, rpc, cache.Fs(), cache.Dir(), cfg.Server.WebPort)
	serv := server.NewServer(stdLog, ws, cfg.Server.Port)

	a, err := api.NewApi(stdLog, sched,
		currentBuildArgs.Version, currentBuildArgs.Commit, currentBuildArgs.BuildType)
	if err != nil {
		log.Error("API initialization failed: %v", err)
		sched.Close()
		store.Close()
		return nil, err
	}
	a.RegisterHandlers(serv)

	// Every playback transition fans out to attached socket clients and to
	// WebSocket RPC subscribers.
	sched.SetNotifier(func(u azanlib.StateUpdate) {
		upd := &common.StateUpdate{
			Playing: u.Playing,
			Prayer:  string(u.Prayer),
			At:      u.At,
		}
		serv.Pool().Broadcast(server.MakeResult(common.UPDATE_STATE, upd))
		notifier.Broadcast(server.StateMethod, upd)
	})

	return &DaemonComponents{
		Store:    store,
		Schedule: sched,
		Api:      a,
		Server:   serv,
		logger:   log,
	}, nil
}

func enabledFlags(m map[string]bool) map[azanlib.PrayerName]bool {
	if len(m) == 0 {
		return nil
	}
	out := make(map[azanlib.PrayerName]bool, len(m))
	for k, v := range m {
		if name, err := azanlib.ParsePrayerName(k); err == nil {
			out[name] = v
		}
	}
	return out
}

func audioSources(cfg *Config) []audio.Source {
	sources := []audio.Source{{Key: audio.DefaultKey, URL: cfg.Audio.Azan}}
	if cfg.Audio.FajrAzan != "" {
		sources = append(sources, audio.Source{Key: audio.FajrKey, URL: cfg.Audio.FajrAzan})
	}
	return sources
}
