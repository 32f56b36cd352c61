package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/pkg/azanlib"
)

type stubProvider struct {
	table *azanlib.TimeTable
}

func (p stubProvider) TodayTable(_ context.Context) (*azanlib.TimeTable, error) {
	return p.table.Clone(), nil
}

type stubAudio struct{}

func (stubAudio) Resolve(n azanlib.PrayerName) (*azanlib.AudioRef, error) {
	return &azanlib.AudioRef{Prayer: n, File: "azan.mp3", URL: "http://host/media/azan/azan.mp3"}, nil
}

type stubSink struct{}

func (stubSink) Play(context.Context, *azanlib.AudioRef) error { return nil }
func (stubSink) Stop(context.Context) error                    { return nil }

func newTestSchedule(t *testing.T) *azanlib.Schedule {
	t.Helper()
	tomorrow := time.Now().Add(24 * time.Hour)
	table := azanlib.NewTimeTable(tomorrow.Format(azanlib.DateLayout), []azanlib.Event{
		{Name: azanlib.Fajr, Time: tomorrow, Enabled: true},
	})
	sched, err := azanlib.NewSchedule(azanlib.ScheduleConfig{
		Provider: stubProvider{table: table},
		Audio:    stubAudio{},
		Sink:     stubSink{},
		Location: time.UTC,
	})
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(sched.Close)
	return sched
}

func newTestWeb(t *testing.T, secret string) *httptest.Server {
	t.Helper()
	sched := newTestSchedule(t)

	fs := afero.NewMemMapFs()
	fs.MkdirAll("/cache", 0o755)
	afero.WriteFile(fs, "/cache/azan.mp3", []byte("audio-bytes"), 0o644)

	l := log.New(io.Discard, "", 0)
	rpc := NewRPCServer(&RPCConfig{Secret: secret, Version: "1.2.3"}, sched, NewRPCNotifier(l))
	ws := NewWebServer(l, sched, rpc, fs, "/cache", common.DefaultWebPort)

	srv := httptest.NewServer(ws.handler())
	t.Cleanup(srv.Close)
	t.Cleanup(rpc.Close)
	return srv
}

func TestWebStatus(t *testing.T) {
	srv := newTestWeb(t, "s3cret")

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var st common.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Playing {
		t.Error("expected idle daemon")
	}
	if st.NextPrayer != "fajr" {
		t.Errorf("next prayer = %q, want fajr", st.NextPrayer)
	}
	if len(st.Events) != 1 {
		t.Errorf("events = %d, want 1", len(st.Events))
	}
}

func TestWebServesCachedMedia(t *testing.T) {
	srv := newTestWeb(t, "s3cret")

	resp, err := http.Get(srv.URL + "/media/azan/azan.mp3")
	if err != nil {
		t.Fatalf("GET media: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "audio-bytes" {
		t.Errorf("body = %q", body)
	}
}

func rpcCall(t *testing.T, srv *httptest.Server, token, method string, params any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/jsonrpc", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /jsonrpc: %v", err)
	}
	return resp
}

func TestJSONRPCRequiresToken(t *testing.T) {
	srv := newTestWeb(t, "s3cret")

	resp := rpcCall(t, srv, "", "system.getVersion", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestJSONRPCGetVersion(t *testing.T) {
	srv := newTestWeb(t, "s3cret")

	resp := rpcCall(t, srv, "s3cret", "system.getVersion", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Result common.VersionResponse `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Result.Version != "1.2.3" {
		t.Errorf("version = %q", out.Result.Version)
	}
}

func TestJSONRPCStatusAndStop(t *testing.T) {
	srv := newTestWeb(t, "s3cret")

	resp := rpcCall(t, srv, "s3cret", "azan.status", struct{}{})
	defer resp.Body.Close()
	var out struct {
		Result common.StatusResponse `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Result.Playing {
		t.Error("expected idle daemon")
	}

	resp2 := rpcCall(t, srv, "s3cret", "azan.stop", struct{}{})
	defer resp2.Body.Close()
	var out2 struct {
		Result common.StopResponse `json:"result"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&out2); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out2.Result.WasPlaying {
		t.Error("stop on idle daemon reported was_playing")
	}
}

func TestJSONRPCTriggerUnknownPrayer(t *testing.T) {
	srv := newTestWeb(t, "s3cret")

	resp := rpcCall(t, srv, "s3cret", "azan.trigger", common.TriggerParams{Prayer: "brunch"})
	defer resp.Body.Close()
	var out struct {
		Error *struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error == nil || out.Error.Code != int(codeUnknownPrayer) {
		t.Fatalf("error = %+v, want code %d", out.Error, codeUnknownPrayer)
	}
}
