package distributed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/gosplat/internal/camera"
	"github.com/cwbudde/gosplat/internal/framebuffer"
	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/loader"
	"github.com/cwbudde/gosplat/internal/pipeline"
	"github.com/cwbudde/gosplat/internal/raster"
	"github.com/cwbudde/gosplat/internal/splat"
	"github.com/cwbudde/gosplat/internal/transport"
)

// Driver owns one rank's share of a distributed render.
type Driver struct {
	Rank      int
	World     int
	Transport transport.Transport
}

// New builds a Driver bound to t, taking Rank and World from it.
func New(t transport.Transport) *Driver {
	return &Driver{Rank: t.Rank(), World: t.Size(), Transport: t}
}

// Background is composited behind the final image once everything has
// been drawn; it defaults to black when unset.
var Background = linalg.Vec3{0, 0, 0}

// RunFrame renders one frame of src from cam. Every rank must call it
// together. On rank 0 it returns the final composited image as raw
// W*H*3 RGB bytes (framebuffer.WriteRaw's format); every other rank
// returns (nil, nil) once it has forwarded its share.
func (d *Driver) RunFrame(cam *camera.Camera, src loader.VertexSource) ([]byte, error) {
	total := src.Count()
	owned := strided(total, d.Rank, d.World)

	loadStart := time.Now()
	store, err := pipeline.LoadIndices(src, owned)
	if err != nil {
		return nil, fmt.Errorf("distributed: rank %d load: %w", d.Rank, err)
	}
	d.debugTiming("load", time.Since(loadStart), "primitives", store.Len())

	dir := camera.DepthDirection()
	local := make([]Record, store.Len())
	for i := 0; i < store.Len(); i++ {
		g := store.At(i)
		gCam := cam.Transform(g.XYZ)
		local[i] = Record{
			Valid: true,
			Depth: gCam.XYZ().Dot(dir.XYZ()),
			XYZ:   g.XYZ,
			Cov3D: g.Cov3D,
			Color: g.Color,
		}
	}

	sortStart := time.Now()
	padded, err := equalizeCounts(d.Transport, local)
	if err != nil {
		return nil, fmt.Errorf("distributed: rank %d equalize counts: %w", d.Rank, err)
	}

	sorted, err := OddEvenSort(d.Transport, padded)
	if err != nil {
		return nil, fmt.Errorf("distributed: rank %d sort: %w", d.Rank, err)
	}
	d.debugTiming("sort", time.Since(sortStart))

	renderStart := time.Now()
	fb := framebuffer.New(cam.Width, cam.Height)
	for _, rec := range sorted {
		if !rec.Valid {
			continue
		}
		gCam := cam.Transform(rec.XYZ)
		plot := splat.Project(cam, gCam, rec.Cov3D)
		viewDir := gCam.XYZ().Normalized()
		color := rec.Color.Eval(viewDir)
		raster.Draw(fb, plot, color, rec.Color.Opacity)
	}
	d.debugTiming("render", time.Since(renderStart))

	combineStart := time.Now()
	combined, err := TreeCombine(d.Transport, fb)
	if err != nil {
		return nil, fmt.Errorf("distributed: rank %d combine: %w", d.Rank, err)
	}
	d.debugTiming("combine", time.Since(combineStart))
	if combined == nil {
		return nil, nil
	}

	combined.AddBackground(Background)
	buf := &byteBuffer{}
	if err := combined.WriteRaw(buf); err != nil {
		return nil, fmt.Errorf("distributed: encode result: %w", err)
	}
	return buf.data, nil
}

// debugTiming logs a phase duration on rank 0 only, mirroring the
// per-phase instrumentation a distributed renderer's lead rank typically
// carries for wall-clock diagnosis.
func (d *Driver) debugTiming(phase string, elapsed time.Duration, args ...any) {
	if d.Rank != 0 {
		return
	}
	slog.Debug("distributed: phase timing", append([]any{"phase", phase, "elapsed", elapsed}, args...)...)
}

// strided returns the indices this rank owns out of n total primitives,
// assigning index i to rank i%world.
func strided(n, rank, world int) []int {
	var idx []int
	for i := rank; i < n; i += world {
		idx = append(idx, i)
	}
	return idx
}

// equalizeCounts pads every rank's local record slice up to the largest
// count seen across the group with sentinel records, a precondition of
// OddEvenSort's fixed-size exchange.
func equalizeCounts(t transport.Transport, local []Record) ([]Record, error) {
	counts, err := gatherCounts(t, len(local))
	if err != nil {
		return nil, err
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	out := append([]Record(nil), local...)
	for len(out) < max {
		out = append(out, sentinel())
	}
	return out, nil
}

// gatherCounts has every rank learn every rank's local count via an
// all-to-all exchange over the dedicated transport.TagCount tag, using a
// length-4 int encoded by hand to avoid pulling in an extra dependency
// for a single integer.
func gatherCounts(t transport.Transport, mine int) ([]int, error) {
	world := t.Size()
	counts := make([]int, world)
	counts[t.Rank()] = mine

	for o := 0; o < world; o++ {
		if o == t.Rank() {
			continue
		}
		buf := make([]byte, 4)
		putCount(buf, mine)
		if err := t.Send(buf, o, transport.TagCount); err != nil {
			return nil, fmt.Errorf("send count to rank %d: %w", o, err)
		}
	}
	for o := 0; o < world; o++ {
		if o == t.Rank() {
			continue
		}
		buf := make([]byte, 4)
		if err := t.Recv(buf, o, transport.TagCount); err != nil {
			return nil, fmt.Errorf("recv count from rank %d: %w", o, err)
		}
		counts[o] = getCount(buf)
	}
	return counts, nil
}

func putCount(buf []byte, v int) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
}

func getCount(buf []byte) int {
	return int(buf[0]) | int(buf[1])<<8 | int(buf[2])<<16 | int(buf[3])<<24
}

// byteBuffer is a minimal io.Writer sink, avoiding a bytes.Buffer import
// for a single append.
type byteBuffer struct{ data []byte }

func (b *byteBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
