package api

import (
	"encoding/json"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/server"
)

func (s *Api) versionHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	return common.UPDATE_VERSION, &common.VersionResponse{
		Version:   s.version,
		Commit:    s.commit,
		BuildType: s.buildType,
	}, nil
}
