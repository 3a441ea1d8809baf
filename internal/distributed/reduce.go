package distributed

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/gosplat/internal/framebuffer"
	"github.com/cwbudde/gosplat/internal/transport"
)

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func getF32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

// TreeCombine folds every rank's framebuffer into rank 0's using jump
// doubling: at each step ranks a multiple of 2*step receive from
// rank+step and composite it behind their own image, while the sending
// rank drops out. Ranks other than 0 return nil once they've sent.
func TreeCombine(t transport.Transport, fb *framebuffer.Framebuffer) (*framebuffer.Framebuffer, error) {
	rank, world := t.Rank(), t.Size()
	w, h := fb.W, fb.H

	for step := 1; step < world; step *= 2 {
		if rank%(2*step) == 0 {
			partner := rank + step
			if partner >= world {
				continue
			}
			behind, err := recvFramebuffer(t, partner, w, h)
			if err != nil {
				return nil, fmt.Errorf("distributed: combine recv from %d at step %d: %w", partner, step, err)
			}
			fb.Combine(behind)
		} else if rank%step == 0 {
			if err := sendFramebuffer(t, fb, rank-step); err != nil {
				return nil, fmt.Errorf("distributed: combine send to %d at step %d: %w", rank-step, step, err)
			}
			return nil, nil
		}
	}

	if rank == 0 {
		return fb, nil
	}
	return nil, nil
}

func sendFramebuffer(t transport.Transport, fb *framebuffer.Framebuffer, dest int) error {
	n := len(fb.Image)
	colorBuf := make([]byte, n*12)
	off := 0
	for i := 0; i < n; i++ {
		putF32(colorBuf[off:], fb.Image[i][0])
		putF32(colorBuf[off+4:], fb.Image[i][1])
		putF32(colorBuf[off+8:], fb.Image[i][2])
		off += 12
	}
	if err := t.Send(colorBuf, dest, transport.TagColor); err != nil {
		return err
	}

	alphaBuf := make([]byte, len(fb.Alpha)*4)
	off = 0
	for i := range fb.Alpha {
		putF32(alphaBuf[off:], fb.Alpha[i])
		off += 4
	}
	return t.Send(alphaBuf, dest, transport.TagAlpha)
}

func recvFramebuffer(t transport.Transport, source, w, h int) (*framebuffer.Framebuffer, error) {
	n := w * h
	colorBuf := make([]byte, n*12)
	if err := t.Recv(colorBuf, source, transport.TagColor); err != nil {
		return nil, err
	}
	fb := framebuffer.New(w, h)
	off := 0
	for i := 0; i < n; i++ {
		fb.Image[i][0] = getF32(colorBuf[off:])
		fb.Image[i][1] = getF32(colorBuf[off+4:])
		fb.Image[i][2] = getF32(colorBuf[off+8:])
		off += 12
	}

	alphaBuf := make([]byte, len(fb.Alpha)*4)
	if err := t.Recv(alphaBuf, source, transport.TagAlpha); err != nil {
		return nil, err
	}
	off = 0
	for i := range fb.Alpha {
		fb.Alpha[i] = getF32(alphaBuf[off:])
		off += 4
	}
	return fb, nil
}
