package server

import (
	"log"
	"net"
	"sync"
)

// Pool tracks socket clients that attached for playback state updates
// and fans broadcasts out to them.
type Pool struct {
	mu *sync.RWMutex
	l  *log.Logger
	m  []net.Conn
}

func NewPool(l *log.Logger) *Pool {
	return &Pool{
		mu: &sync.RWMutex{},
		l:  l,
		m:  []net.Conn{},
	}
}

// Attach subscribes a connection to state broadcasts. Attaching twice is
// harmless beyond duplicate updates.
func (p *Pool) Attach(conn net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m = append(p.m, conn)
}

// Detach removes a connection from the subscriber set without closing it.
func (p *Pool) Detach(conn net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.m {
		if c == conn {
			p.m[i] = p.m[len(p.m)-1]
			p.m = p.m[:len(p.m)-1]
			return
		}
	}
}

// Count returns the number of attached subscribers.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.m)
}

// Broadcast writes a framed message to every subscriber. Connections that
// fail are dropped from the pool and closed.
func (p *Pool) Broadcast(data []byte) {
	head := intToBytes(uint32(len(data)))

	p.mu.RLock()
	conns := make([]net.Conn, len(p.m))
	copy(conns, p.m)
	p.mu.RUnlock()

	for _, conn := range conns {
		if _, err := conn.Write(head); err != nil {
			p.dropConn(conn, err)
			continue
		}
		if _, err := conn.Write(data); err != nil {
			p.dropConn(conn, err)
		}
	}
}

func (p *Pool) dropConn(conn net.Conn, err error) {
	if p.l != nil {
		p.l.Println("Dropping subscriber:", err.Error())
	}
	p.Detach(conn)
	_ = conn.Close()
}
