//go:build !windows

package azancli

import (
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/minaret/minaret/common"
)

// stubDaemon answers one framed request per accepted connection with a
// canned response.
func stubDaemon(t *testing.T, respond func(req Request) []byte) string {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "minaret.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				for {
					buf, err := read(conn)
					if err != nil {
						return
					}
					var req Request
					if err := json.Unmarshal(buf, &req); err != nil {
						return
					}
					if err := write(conn, respond(req)); err != nil {
						return
					}
				}
			}(conn)
		}
	}()
	return sock
}

func result(utype common.UpdateType, msg any) []byte {
	raw, _ := json.Marshal(msg)
	b, _ := json.Marshal(Response{
		Ok:     true,
		Update: &Update{Type: utype, Message: raw},
	})
	return b
}

func TestClientStatusRoundTrip(t *testing.T) {
	sock := stubDaemon(t, func(req Request) []byte {
		if req.Method != common.UPDATE_STATUS {
			return []byte(`{"ok":false,"error":"unexpected method"}`)
		}
		return result(common.UPDATE_STATUS, &common.StatusResponse{
			Playing: true,
			Prayer:  "maghrib",
		})
	})
	t.Setenv(common.SocketPathEnv, sock)

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	st, err := c.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.Playing || st.Prayer != "maghrib" {
		t.Errorf("status = %+v", st)
	}
}

func TestClientTriggerSendsPrayer(t *testing.T) {
	sock := stubDaemon(t, func(req Request) []byte {
		var p common.TriggerParams
		raw, _ := json.Marshal(req.Message)
		_ = json.Unmarshal(raw, &p)
		if p.Prayer != "isha" {
			return []byte(`{"ok":false,"error":"wrong prayer"}`)
		}
		return result(common.UPDATE_TRIGGER, &common.TriggerResponse{Prayer: p.Prayer})
	})
	t.Setenv(common.SocketPathEnv, sock)

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	tr, err := c.Trigger("isha")
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if tr.Prayer != "isha" {
		t.Errorf("prayer = %q", tr.Prayer)
	}
}

func TestClientErrorResponse(t *testing.T) {
	sock := stubDaemon(t, func(Request) []byte {
		return []byte(`{"ok":false,"error":"prayer fajr already played today"}`)
	})
	t.Setenv(common.SocketPathEnv, sock)

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	if _, err := c.Trigger("fajr"); err == nil {
		t.Fatal("expected error response")
	}
}

func TestDispatcherRoutesStateUpdates(t *testing.T) {
	var got *common.StateUpdate
	d := &Dispatcher{Handlers: map[common.UpdateType]Handler{
		common.UPDATE_STATE: NewStateHandler(func(u *common.StateUpdate) error {
			got = u
			return ErrDisconnect
		}),
	}}

	msg := result(common.UPDATE_STATE, &common.StateUpdate{Playing: true, Prayer: "asr"})
	if err := d.process(msg); err != ErrDisconnect {
		t.Fatalf("process err = %v, want ErrDisconnect", err)
	}
	if got == nil || !got.Playing || got.Prayer != "asr" {
		t.Errorf("update = %+v", got)
	}
}

func TestBufioRejectsOversizedPayload(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	big := make([]byte, common.MaxMessageSize+1)
	if err := write(a, big); err == nil {
		t.Fatal("expected error for oversized payload")
	}
}
