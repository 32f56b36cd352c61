package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/minaret/minaret/common"
)

const sampleConfig = `
provider:
  url: https://api.example.com/timetable
  timezone: UTC
schedule:
  offset_minutes: 5
  reset_timeout: 3m
  enabled:
    asr: false
audio:
  azan: /media/azan.mp3
  fajr_azan: https://cdn.example.com/fajr.mp3
player:
  endpoint: http://192.168.1.20:8095/api/player
  token: s3cret
server:
  web_port: 9090
  public_host: 192.168.1.10
rpc:
  secret: rpc-token
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Provider.URL != "https://api.example.com/timetable" {
		t.Errorf("url = %q", cfg.Provider.URL)
	}
	if cfg.Schedule.OffsetMinutes != 5 {
		t.Errorf("offset = %d", cfg.Schedule.OffsetMinutes)
	}
	if cfg.Schedule.ResetTimeout != 3*time.Minute {
		t.Errorf("reset timeout = %v", cfg.Schedule.ResetTimeout)
	}
	if v, ok := cfg.Schedule.Enabled["asr"]; !ok || v {
		t.Errorf("asr enable flag = %v, %v", v, ok)
	}
	if cfg.Server.Port != common.DefaultPort {
		t.Errorf("port default = %d", cfg.Server.Port)
	}
	if cfg.Server.WebPort != 9090 {
		t.Errorf("web port = %d", cfg.Server.WebPort)
	}
	loc, err := cfg.location()
	if err != nil || loc != time.UTC {
		t.Errorf("location = %v, %v", loc, err)
	}
	if got := cfg.mediaBaseURL(); got != "http://192.168.1.10:9090/media/azan" {
		t.Errorf("media base url = %q", got)
	}
}

func TestLoadConfigRequiresProviderURL(t *testing.T) {
	path := writeConfig(t, `
audio:
  azan: /media/azan.mp3
player:
  endpoint: http://host/api
`)
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for missing provider.url")
	}
}

func TestLoadConfigRequiresAudio(t *testing.T) {
	path := writeConfig(t, `
provider:
  url: https://api.example.com/timetable
player:
  endpoint: http://host/api
`)
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for missing audio.azan")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv(common.ConfigPathEnv, path)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.RPC.Secret != "rpc-token" {
		t.Errorf("rpc secret = %q", cfg.RPC.Secret)
	}
}

func TestEnabledFlagsParsesNames(t *testing.T) {
	out := enabledFlags(map[string]bool{"Fajr": true, "asr": false, "brunch": true})
	if len(out) != 2 {
		t.Fatalf("flags = %v", out)
	}
	if v := out["fajr"]; !v {
		t.Errorf("fajr = %v", v)
	}
	if v, ok := out["asr"]; !ok || v {
		t.Errorf("asr = %v, %v", v, ok)
	}
}
