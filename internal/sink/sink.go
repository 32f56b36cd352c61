// Package sink drives the playback target over its REST control API.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minaret/minaret/pkg/azanlib"
	"github.com/minaret/minaret/pkg/logger"
)

// playRequest is the body of a play command.
type playRequest struct {
	URL    string `json:"url"`
	Prayer string `json:"prayer,omitempty"`
}

// Config assembles a MediaPlayer.
type Config struct {
	// Endpoint is the base URL of the player's control API,
	// e.g. "http://192.168.1.20:8095/api/player".
	Endpoint string

	// Token, when set, is sent as a bearer token.
	Token string

	Client *http.Client
	Log    logger.Logger
}

// MediaPlayer implements azanlib.PlaybackSink against a networked player.
type MediaPlayer struct {
	endpoint string
	token    string
	client   *http.Client
	log      logger.Logger
}

func New(cfg Config) (*MediaPlayer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("sink: empty endpoint")
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Log == nil {
		cfg.Log = logger.NewNopLogger()
	}
	return &MediaPlayer{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		token:    cfg.Token,
		client:   cfg.Client,
		log:      cfg.Log,
	}, nil
}

// Play instructs the player to start the referenced audio.
func (m *MediaPlayer) Play(ctx context.Context, ref *azanlib.AudioRef) error {
	body, err := json.Marshal(playRequest{URL: ref.URL, Prayer: string(ref.Prayer)})
	if err != nil {
		return err
	}
	m.log.Info("playing %s on %s", ref.URL, m.endpoint)
	return m.post(ctx, "/play", body)
}

// Stop halts whatever the player is doing. Stopping an idle player is
// not an error.
func (m *MediaPlayer) Stop(ctx context.Context) error {
	return m.post(ctx, "/stop", nil)
}

func (m *MediaPlayer) post(ctx context.Context, route string, body []byte) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+route, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("player %s: %w", route, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("player %s: %s", route, resp.Status)
	}
	return nil
}

var _ azanlib.PlaybackSink = (*MediaPlayer)(nil)
