package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/minaret/minaret/common"
)

const DESCRIPTION = `
Minaret is a prayer-time azan daemon. It fetches the day's
prayer timetable, wakes up exactly at the next azan, plays
the call on a networked media player, and guarantees every
prayer is announced at most once per day.
`

const (
	DaemonDescription = `The daemon command runs the azan scheduler in the
foreground. It loads the configuration file, fetches today's
timetable, and arms the next wake-up.

Example:
        minaret daemon --config ~/.minaret/config.yaml

`
	PlayDescription = `The play command asks the daemon to play the azan for a
prayer immediately. Real prayers honour the once-per-day rule;
the name "test" always plays and is the default when no prayer
is given.

Example:
        minaret play maghrib

`
	StopDescription = `The stop command halts active azan playback. Stopping an
idle daemon is not an error.

Example:
        minaret stop

`
	RefreshDescription = `The refresh command makes the daemon refetch today's
timetable from the prayer-time service and re-arm its wake-up
timer.

Example:
        minaret refresh

`
	StatusDescription = `The status command prints the daemon's playback state,
the next scheduled prayer, and today's full timetable.

Example:
        minaret status

`
	AttachDescription = `The attach command subscribes to the daemon's playback
state broadcasts and prints every transition until interrupted.

Example:
        minaret attach

`
)

// Config is the daemon configuration, read from a YAML file via viper.
type Config struct {
	Provider struct {
		URL      string `mapstructure:"url"`
		Timezone string `mapstructure:"timezone"`
	} `mapstructure:"provider"`

	Schedule struct {
		OffsetMinutes int             `mapstructure:"offset_minutes"`
		ResetTimeout  time.Duration   `mapstructure:"reset_timeout"`
		Enabled       map[string]bool `mapstructure:"enabled"`
	} `mapstructure:"schedule"`

	Audio struct {
		Dir      string `mapstructure:"dir"`
		Azan     string `mapstructure:"azan"`
		FajrAzan string `mapstructure:"fajr_azan"`
	} `mapstructure:"audio"`

	Player struct {
		Endpoint string `mapstructure:"endpoint"`
		Token    string `mapstructure:"token"`
	} `mapstructure:"player"`

	Server struct {
		Port       int    `mapstructure:"port"`
		WebPort    int    `mapstructure:"web_port"`
		PublicHost string `mapstructure:"public_host"`
	} `mapstructure:"server"`

	RPC struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"rpc"`

	Store struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"store"`
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".minaret")
}

// loadConfig reads the daemon configuration. Explicit path wins, then the
// MINARET_CONFIG environment variable, then config.yaml in ~/.minaret or
// the working directory. A missing file leaves the defaults in place.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("provider.timezone", "Local")
	v.SetDefault("schedule.offset_minutes", 0)
	v.SetDefault("schedule.reset_timeout", 5*time.Minute)
	v.SetDefault("audio.dir", filepath.Join(configDir(), "audio"))
	v.SetDefault("server.port", common.DefaultPort)
	v.SetDefault("server.web_port", common.DefaultWebPort)
	v.SetDefault("server.public_host", common.TCPHost)
	v.SetDefault("store.path", filepath.Join(configDir(), "minaret.db"))

	if path == "" {
		path = os.Getenv(common.ConfigPathEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Provider.URL == "" {
		return nil, fmt.Errorf("config: provider.url is required")
	}
	if cfg.Audio.Azan == "" {
		return nil, fmt.Errorf("config: audio.azan is required")
	}
	if cfg.Player.Endpoint == "" {
		return nil, fmt.Errorf("config: player.endpoint is required")
	}
	return &cfg, nil
}

// location resolves the configured timezone.
func (c *Config) location() (*time.Location, error) {
	if c.Provider.Timezone == "" || c.Provider.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Provider.Timezone)
}

// mediaBaseURL is the public prefix under which cached audio is served.
func (c *Config) mediaBaseURL() string {
	return fmt.Sprintf("http://%s:%d/media/azan", c.Server.PublicHost, c.Server.WebPort)
}
