package transport

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"time"
)

// TCPTransport is a Transport over one persistent TCP connection per peer
// pair, using a simple length-prefixed framing: a big-endian int32 tag
// followed by a big-endian int32 length followed by the payload
// (encoding/binary, no external framing library — see DESIGN.md).
type TCPTransport struct {
	rank  int
	peers []string // peers[i] is the listen address of rank i

	listener net.Listener
	conns    map[int]net.Conn
	writeMus map[int]*sync.Mutex

	demuxMu sync.Mutex
	demux   map[[2]int]chan []byte // (peer, tag) -> inbound frames

	barrierOnce sync.Once
	closed      bool
	closeMu     sync.Mutex
}

// Dial establishes a TCPTransport for this rank: it listens on
// peers[rank] and connects to every peer, with the higher-ranked side of
// a pair dialing and the lower-ranked side accepting, so each pair opens
// exactly one connection. A dial that fails is retried for up to about
// five seconds, so ranks started at the same time can find each other.
func Dial(rank int, peers []string) (*TCPTransport, error) {
	t := &TCPTransport{
		rank:     rank,
		peers:    peers,
		conns:    make(map[int]net.Conn),
		writeMus: make(map[int]*sync.Mutex),
		demux:    make(map[[2]int]chan []byte),
	}

	ln, err := net.Listen("tcp", peers[rank])
	if err != nil {
		return nil, fmt.Errorf("transport: listen on %s: %w", peers[rank], err)
	}
	t.listener = ln

	var higherCount int
	for o := range peers {
		if o > rank {
			higherCount++
		}
	}

	accepted := make(chan net.Conn, higherCount)
	acceptErr := make(chan error, 1)
	go func() {
		for i := 0; i < higherCount; i++ {
			c, err := ln.Accept()
			if err != nil {
				acceptErr <- err
				return
			}
			accepted <- c
		}
	}()

	for o, addr := range peers {
		if o == rank {
			continue
		}
		if o < rank {
			var conn net.Conn
			var err error
			for attempt := 0; attempt < 50; attempt++ {
				if conn, err = net.Dial("tcp", addr); err == nil {
					break
				}
				time.Sleep(100 * time.Millisecond)
			}
			if err != nil {
				return nil, fmt.Errorf("transport: dial rank %d at %s: %w", o, addr, err)
			}
			if err := binary.Write(conn, binary.BigEndian, int32(rank)); err != nil {
				return nil, fmt.Errorf("transport: handshake with rank %d: %w", o, err)
			}
			t.register(o, conn)
		}
	}

	for i := 0; i < higherCount; i++ {
		select {
		case conn := <-accepted:
			var peerRank int32
			if err := binary.Read(conn, binary.BigEndian, &peerRank); err != nil {
				return nil, fmt.Errorf("transport: handshake accept: %w", err)
			}
			t.register(int(peerRank), conn)
		case err := <-acceptErr:
			return nil, fmt.Errorf("transport: accept: %w", err)
		}
	}

	return t, nil
}

func (t *TCPTransport) register(peer int, conn net.Conn) {
	t.conns[peer] = conn
	t.writeMus[peer] = &sync.Mutex{}
	go t.readLoop(peer, conn)
}

func (t *TCPTransport) readLoop(peer int, conn net.Conn) {
	for {
		var header [8]byte
		if _, err := fullRead(conn, header[:]); err != nil {
			return
		}
		tag := int(binary.BigEndian.Uint32(header[0:4]))
		n := int(binary.BigEndian.Uint32(header[4:8]))
		payload := make([]byte, n)
		if _, err := fullRead(conn, payload); err != nil {
			return
		}
		t.demuxMu.Lock()
		ch, ok := t.demux[[2]int{peer, tag}]
		if !ok {
			ch = make(chan []byte, 16)
			t.demux[[2]int{peer, tag}] = ch
		}
		t.demuxMu.Unlock()
		ch <- payload
	}
}

func fullRead(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Send implements Transport.
func (t *TCPTransport) Send(buf []byte, dest int, tag int) error {
	conn, ok := t.conns[dest]
	if !ok {
		return fmt.Errorf("transport: no connection to rank %d", dest)
	}
	mu := t.writeMus[dest]
	mu.Lock()
	defer mu.Unlock()

	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(tag))
	binary.BigEndian.PutUint32(header[4:8], uint32(len(buf)))
	if _, err := conn.Write(header[:]); err != nil {
		return fmt.Errorf("transport: send header to rank %d: %w", dest, err)
	}
	if _, err := conn.Write(buf); err != nil {
		return fmt.Errorf("transport: send payload to rank %d: %w", dest, err)
	}
	return nil
}

// Recv implements Transport.
func (t *TCPTransport) Recv(buf []byte, source int, tag int) error {
	t.demuxMu.Lock()
	key := [2]int{source, tag}
	ch, ok := t.demux[key]
	if !ok {
		ch = make(chan []byte, 16)
		t.demux[key] = ch
	}
	t.demuxMu.Unlock()

	payload, ok := <-ch
	if !ok {
		return ErrClosed
	}
	if len(payload) != len(buf) {
		return fmt.Errorf("transport: recv length mismatch from rank %d: got %d want %d", source, len(payload), len(buf))
	}
	copy(buf, payload)
	return nil
}

// Size implements Transport.
func (t *TCPTransport) Size() int { return len(t.peers) }

// Rank implements Transport.
func (t *TCPTransport) Rank() int { return t.rank }

// Barrier implements Transport with an all-to-all exchange on a
// dedicated tag: every rank sends a single byte to every other rank and
// waits for one from every other rank.
func (t *TCPTransport) Barrier() error {
	const barrierTag = 1 << 20
	for o := range t.peers {
		if o == t.rank {
			continue
		}
		if err := t.Send([]byte{0}, o, barrierTag); err != nil {
			return err
		}
	}
	for o := range t.peers {
		if o == t.rank {
			continue
		}
		if err := t.Recv(make([]byte, 1), o, barrierTag); err != nil {
			return err
		}
	}
	return nil
}

// Close implements Transport.
func (t *TCPTransport) Close() error {
	t.closeMu.Lock()
	defer t.closeMu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	for _, c := range t.conns {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.listener != nil {
		if err := t.listener.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
