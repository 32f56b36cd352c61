package api

import (
	"encoding/json"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/server"
)

// attachHandler subscribes the connection to playback state broadcasts and
// replies with the current status so the client starts from a known state.
func (s *Api) attachHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	pool.Attach(sconn.Conn)
	return common.UPDATE_ATTACH, server.StatusSnapshot(s.sched), nil
}
