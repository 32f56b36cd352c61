package api

import (
	"encoding/json"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/server"
)

func (s *Api) statusHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_STATUS, server.StatusSnapshot(s.sched), nil
}
