package sink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minaret/minaret/pkg/azanlib"
)

type recorded struct {
	path  string
	auth  string
	url   string
	pray  string
	body  bool
}

func newTestPlayer(t *testing.T, status int, rec *[]recorded) (*MediaPlayer, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req playRequest
		hasBody := json.NewDecoder(r.Body).Decode(&req) == nil
		*rec = append(*rec, recorded{
			path: r.URL.Path,
			auth: r.Header.Get("Authorization"),
			url:  req.URL,
			pray: req.Prayer,
			body: hasBody,
		})
		w.WriteHeader(status)
	}))
	p, err := New(Config{Endpoint: srv.URL + "/api/player/", Token: "s3cret"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, srv
}

func TestPlaySendsURLAndAuth(t *testing.T) {
	var rec []recorded
	p, srv := newTestPlayer(t, http.StatusOK, &rec)
	defer srv.Close()

	err := p.Play(context.Background(), &azanlib.AudioRef{
		Prayer: azanlib.Maghrib,
		File:   "azan.mp3",
		URL:    "http://host:4270/media/azan/azan.mp3",
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(rec) != 1 {
		t.Fatalf("requests = %d, want 1", len(rec))
	}
	r := rec[0]
	if r.path != "/api/player/play" {
		t.Errorf("path = %q", r.path)
	}
	if r.auth != "Bearer s3cret" {
		t.Errorf("auth = %q", r.auth)
	}
	if r.url != "http://host:4270/media/azan/azan.mp3" {
		t.Errorf("url = %q", r.url)
	}
	if r.pray != "maghrib" {
		t.Errorf("prayer = %q", r.pray)
	}
}

func TestStopHitsStopRoute(t *testing.T) {
	var rec []recorded
	p, srv := newTestPlayer(t, http.StatusNoContent, &rec)
	defer srv.Close()

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if len(rec) != 1 || rec[0].path != "/api/player/stop" {
		t.Fatalf("rec = %+v", rec)
	}
}

func TestPlayerErrorStatus(t *testing.T) {
	var rec []recorded
	p, srv := newTestPlayer(t, http.StatusBadGateway, &rec)
	defer srv.Close()

	if err := p.Play(context.Background(), &azanlib.AudioRef{URL: "u"}); err == nil {
		t.Fatal("expected error on 502")
	}
}

func TestPlayerUnreachable(t *testing.T) {
	var rec []recorded
	p, srv := newTestPlayer(t, http.StatusOK, &rec)
	srv.Close()

	if err := p.Play(context.Background(), &azanlib.AudioRef{URL: "u"}); err == nil {
		t.Fatal("expected error on connection failure")
	}
}
