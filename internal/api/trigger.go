package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/server"
	"github.com/minaret/minaret/pkg/azanlib"
)

func (s *Api) triggerHandler(sconn *server.SyncConn, pool *server.Pool, body json.RawMessage) (common.UpdateType, any, error) {
	var m common.TriggerParams
	if err := json.Unmarshal(body, &m); err != nil {
		return common.UPDATE_TRIGGER, nil, err
	}
	if m.Prayer == "" {
		return common.UPDATE_TRIGGER, nil, errors.New("prayer is required")
	}
	name, err := azanlib.ParsePrayerName(m.Prayer)
	if err != nil {
		return common.UPDATE_TRIGGER, nil, err
	}
	if err := s.sched.Trigger(context.Background(), name); err != nil {
		return common.UPDATE_TRIGGER, nil, err
	}
	return common.UPDATE_TRIGGER, &common.TriggerResponse{
		Prayer:   string(name),
		IssuedAt: time.Now(),
	}, nil
}
