package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/server"
)

func (s *Api) refreshHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	if err := s.sched.Refresh(context.Background()); err != nil {
		return common.UPDATE_REFRESH, nil, err
	}
	table := s.sched.Table()
	if table == nil {
		return common.UPDATE_REFRESH, nil, errors.New("no timetable loaded")
	}
	return common.UPDATE_REFRESH, &common.RefreshResponse{
		Date:   table.Date,
		Events: server.EventInfos(table),
	}, nil
}
