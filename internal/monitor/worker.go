package monitor

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"sync"
	"time"

	"github.com/cwbudde/gosplat/internal/camera"
	"github.com/cwbudde/gosplat/internal/distributed"
	"github.com/cwbudde/gosplat/internal/loader"
	"github.com/cwbudde/gosplat/internal/pipeline"
	"github.com/cwbudde/gosplat/internal/transport"
)

// runJob executes one render job in the background: it loads the scene,
// dispatches to the single-process or distributed path depending on
// Config.World, and records the resulting PNG on the job.
func runJob(jm *JobManager, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("monitor: job not found: %s", jobID)
	}

	if err := jm.UpdateJob(jobID, func(j *RenderJob) {
		j.State = StateRunning
		j.Stage = StageLoading
	}); err != nil {
		return err
	}
	jm.broadcastStage(jobID, StateRunning, StageLoading, "")

	slog.Info("monitor: starting render job", "job_id", jobID, "input", job.Config.InputPath)

	src, err := loader.OpenPLY(job.Config.InputPath)
	if err != nil {
		return jm.fail(jobID, fmt.Errorf("open %s: %w", job.Config.InputPath, err))
	}

	fovX := job.Config.FovX
	if fovX <= 0 {
		fovX = 1.0
	}
	cam := camera.New(job.Config.Width, job.Config.Height, float32(fovX))

	var raw []byte
	if job.Config.World <= 1 {
		raw, err = renderSingleProcess(jm, jobID, cam, src)
	} else {
		raw, err = renderDistributed(jm, jobID, cam, src, job.Config.World)
	}
	if err != nil {
		return jm.fail(jobID, err)
	}

	jm.broadcastStage(jobID, StateRunning, StageDone, "")

	png, err := encodePNG(raw, cam.Width, cam.Height)
	if err != nil {
		return jm.fail(jobID, fmt.Errorf("encode png: %w", err))
	}

	endTime := time.Now()
	if err := jm.UpdateJob(jobID, func(j *RenderJob) {
		j.State = StateCompleted
		j.Stage = StageDone
		j.Image = png
		j.EndTime = &endTime
	}); err != nil {
		return err
	}

	slog.Info("monitor: render job completed", "job_id", jobID, "elapsed", endTime.Sub(job.StartTime))
	jm.broadcastStage(jobID, StateCompleted, StageDone, "")
	return nil
}

// renderSingleProcess runs the whole scene through the non-distributed
// pipeline, broadcasting the stage transitions a single rank would never
// otherwise surface.
func renderSingleProcess(jm *JobManager, jobID string, cam *camera.Camera, src loader.VertexSource) ([]byte, error) {
	jm.broadcastStage(jobID, StateRunning, StageSorting, "")
	store, err := pipeline.LoadAll(src)
	if err != nil {
		return nil, fmt.Errorf("load vertices: %w", err)
	}

	jm.broadcastStage(jobID, StateRunning, StageRendering, "")
	fb := pipeline.RenderFrame(cam, store)

	buf := &rawBuffer{}
	if err := fb.WriteRaw(buf); err != nil {
		return nil, fmt.Errorf("encode framebuffer: %w", err)
	}
	return buf.data, nil
}

// renderDistributed fans out world in-process ranks over a
// transport.MemoryTransport group and returns rank 0's composited image.
func renderDistributed(jm *JobManager, jobID string, cam *camera.Camera, src loader.VertexSource, world int) ([]byte, error) {
	jm.broadcastStage(jobID, StateRunning, StageSorting, "")

	peers := transport.NewMemoryTransports(world)
	results := make([][]byte, world)
	errs := make([]error, world)

	var wg sync.WaitGroup
	wg.Add(world)
	for r := 0; r < world; r++ {
		go func(r int) {
			defer wg.Done()
			d := distributed.New(peers[r])
			results[r], errs[r] = d.RunFrame(cam, src)
		}(r)
	}

	jm.broadcastStage(jobID, StateRunning, StageRendering, "")
	wg.Wait()
	jm.broadcastStage(jobID, StateRunning, StageCombining, "")

	for r, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("rank %d: %w", r, err)
		}
	}
	return results[0], nil
}

// encodePNG converts raw W*H*3 RGB bytes (framebuffer.WriteRaw's format)
// into a PNG-encoded image.
func encodePNG(raw []byte, w, h int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			img.SetNRGBA(x, y, color.NRGBA{R: raw[i], G: raw[i+1], B: raw[i+2], A: 255})
		}
	}

	buf := &rawBuffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.data, nil
}

// rawBuffer is a minimal io.Writer sink, mirroring
// internal/distributed's byteBuffer.
type rawBuffer struct{ data []byte }

func (b *rawBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (jm *JobManager) fail(jobID string, err error) error {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *RenderJob) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("monitor: render job failed", "job_id", jobID, "error", err)
	jm.broadcastStage(jobID, StateFailed, StageDone, err.Error())
	return err
}

func (jm *JobManager) broadcastStage(jobID string, state JobState, stage Stage, errMsg string) {
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     state,
		Stage:     stage,
		Error:     errMsg,
		Timestamp: time.Now(),
	})
}
