package server

import (
	"context"
	"errors"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/pkg/azanlib"
)

// Custom JSON-RPC error codes for azan operations.
const (
	codeUnknownPrayer  = jrpc2.Code(-32001)
	codeAlreadyPlayed  = jrpc2.Code(-32002)
	codeNoTimeTable    = jrpc2.Code(-32003)
	codePlaybackFailed = jrpc2.Code(-32004)
	codeProviderFailed = jrpc2.Code(-32005)
	codeInvalidParams  = jrpc2.Code(-32602)
)

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // Auth token (required -- empty means RPC disabled)
	Version   string // Daemon version
	Commit    string // Git commit
	BuildType string // Build type
}

// RPCServer manages the JSON-RPC 2.0 bridge and method handlers.
type RPCServer struct {
	bridge    jhttp.Bridge
	methods   handler.Map
	notifier  *RPCNotifier
	secret    string
	version   string
	commit    string
	buildType string
	sched     *azanlib.Schedule
}

// TriggerRPCParams is the input for azan.trigger.
type TriggerRPCParams struct {
	Prayer string `json:"prayer"`
}

// EmptyParams is a placeholder input for parameterless methods.
type EmptyParams struct{}

// NewRPCServer creates a new RPCServer with method handlers and HTTP bridge.
func NewRPCServer(cfg *RPCConfig, sched *azanlib.Schedule, notifier *RPCNotifier) *RPCServer {
	rs := &RPCServer{
		secret:    cfg.Secret,
		version:   cfg.Version,
		commit:    cfg.Commit,
		buildType: cfg.BuildType,
		sched:     sched,
		notifier:  notifier,
	}

	rs.methods = handler.Map{
		"system.getVersion": handler.New(rs.systemGetVersion),
		"azan.trigger":      handler.New(rs.azanTrigger),
		"azan.stop":         handler.New(rs.azanStop),
		"azan.refresh":      handler.New(rs.azanRefresh),
		"azan.status":       handler.New(rs.azanStatus),
	}

	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*common.VersionResponse, error) {
	return &common.VersionResponse{
		Version:   rs.version,
		Commit:    rs.commit,
		BuildType: rs.buildType,
	}, nil
}

// azanTrigger plays the named prayer now, subject to the once-per-day rule.
func (rs *RPCServer) azanTrigger(ctx context.Context, p *TriggerRPCParams) (*common.TriggerResponse, error) {
	if p.Prayer == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: prayer"}
	}
	name, err := azanlib.ParsePrayerName(p.Prayer)
	if err != nil {
		return nil, &jrpc2.Error{Code: codeUnknownPrayer, Message: err.Error()}
	}
	if err := rs.sched.Trigger(ctx, name); err != nil {
		return nil, rpcError(err)
	}
	return &common.TriggerResponse{
		Prayer:   string(name),
		IssuedAt: time.Now(),
	}, nil
}

// azanStop halts active playback. Stopping an idle daemon is not an error.
func (rs *RPCServer) azanStop(ctx context.Context, _ *EmptyParams) (*common.StopResponse, error) {
	prior, err := rs.sched.StopPlayback(ctx)
	if err != nil {
		return nil, rpcError(err)
	}
	return &common.StopResponse{
		WasPlaying: prior.Playing,
		Prayer:     string(prior.Prayer),
	}, nil
}

// azanRefresh refetches today's timetable and re-arms the wake-up timer.
func (rs *RPCServer) azanRefresh(ctx context.Context, _ *EmptyParams) (*common.RefreshResponse, error) {
	if err := rs.sched.Refresh(ctx); err != nil {
		return nil, rpcError(err)
	}
	table := rs.sched.Table()
	if table == nil {
		return nil, &jrpc2.Error{Code: codeNoTimeTable, Message: "no timetable loaded"}
	}
	return &common.RefreshResponse{
		Date:   table.Date,
		Events: EventInfos(table),
	}, nil
}

func (rs *RPCServer) azanStatus(_ context.Context, _ *EmptyParams) (*common.StatusResponse, error) {
	return StatusSnapshot(rs.sched), nil
}

// rpcError maps domain errors onto JSON-RPC error codes.
func rpcError(err error) error {
	switch {
	case errors.Is(err, azanlib.ErrUnknownPrayer):
		return &jrpc2.Error{Code: codeUnknownPrayer, Message: err.Error()}
	case errors.Is(err, azanlib.ErrAlreadyPlayed):
		return &jrpc2.Error{Code: codeAlreadyPlayed, Message: err.Error()}
	case errors.Is(err, azanlib.ErrNoTimeTable):
		return &jrpc2.Error{Code: codeNoTimeTable, Message: err.Error()}
	case errors.Is(err, azanlib.ErrAudioUnavailable), errors.Is(err, azanlib.ErrSinkFailure):
		return &jrpc2.Error{Code: codePlaybackFailed, Message: err.Error()}
	case errors.Is(err, azanlib.ErrProviderFailure):
		return &jrpc2.Error{Code: codeProviderFailed, Message: err.Error()}
	default:
		return err
	}
}

// Close shuts down the jrpc2 bridge, releasing internal goroutines.
func (rs *RPCServer) Close() {
	rs.bridge.Close()
}
