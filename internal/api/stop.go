package api

import (
	"context"
	"encoding/json"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/server"
)

func (s *Api) stopHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	prior, err := s.sched.StopPlayback(context.Background())
	if err != nil {
		return common.UPDATE_STOP, nil, err
	}
	return common.UPDATE_STOP, &common.StopResponse{
		WasPlaying: prior.Playing,
		Prayer:     string(prior.Prayer),
	}, nil
}
