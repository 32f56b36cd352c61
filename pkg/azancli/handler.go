package azancli

import (
	"encoding/json"

	"github.com/minaret/minaret/common"
)

// Handler defines the interface for processing daemon updates.
// Implementations receive raw JSON messages and are responsible for
// unmarshaling and processing them appropriately.
type Handler interface {
	Handle(json.RawMessage) error
}

// NewStateHandler creates a handler for playback state broadcasts. The
// callback is invoked for every transition pushed by the daemon.
func NewStateHandler(callback func(*common.StateUpdate) error) *StateHandler {
	return &StateHandler{Callback: callback}
}

// StateHandler processes playback state updates from the daemon.
type StateHandler struct {
	Callback func(*common.StateUpdate) error
}

// Handle unmarshals a raw state message and invokes the callback.
func (h *StateHandler) Handle(m json.RawMessage) error {
	var v common.StateUpdate
	err := json.Unmarshal(m, &v)
	if err != nil {
		return err
	}
	return h.Callback(&v)
}
