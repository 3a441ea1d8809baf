// Package monitor implements the ambient HTTP job/progress tracker
// behind the "serve" subcommand: it accepts render requests, runs them
// in the background, and exposes status, an SSE progress stream, and
// the rendered image.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobState is the lifecycle state of a RenderJob.
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
)

// Stage names the render job's current step, broadcast over SSE so a
// client can show progress without polling.
type Stage string

const (
	StageLoading    Stage = "loading"
	StageSorting    Stage = "sorting"
	StageRendering  Stage = "rendering"
	StageCombining  Stage = "combining"
	StageDone       Stage = "done"
)

// Config describes one render request.
type Config struct {
	InputPath string  `json:"inputPath"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FovX      float64 `json:"fovX"`
	World     int     `json:"world"`
}

// RenderJob is one tracked invocation of the render pipeline.
type RenderJob struct {
	ID        string     `json:"id"`
	State     JobState   `json:"state"`
	Stage     Stage      `json:"stage"`
	Config    Config     `json:"config"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Error     string     `json:"error,omitempty"`
	Image     []byte     `json:"-"`
}

// JobManager owns the in-memory set of tracked jobs and their event
// broadcaster.
type JobManager struct {
	mu          sync.RWMutex
	jobs        map[string]*RenderJob
	broadcaster *EventBroadcaster
}

// NewJobManager builds an empty JobManager.
func NewJobManager() *JobManager {
	return &JobManager{
		jobs:        make(map[string]*RenderJob),
		broadcaster: NewEventBroadcaster(),
	}
}

// CreateJob registers a new pending job and returns it.
func (jm *JobManager) CreateJob(cfg Config) *RenderJob {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job := &RenderJob{
		ID:        uuid.New().String(),
		State:     StatePending,
		Stage:     StageLoading,
		Config:    cfg,
		StartTime: time.Now(),
	}
	jm.jobs[job.ID] = job
	return job
}

// GetJob looks up a job by ID.
func (jm *JobManager) GetJob(id string) (*RenderJob, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()
	job, ok := jm.jobs[id]
	return job, ok
}

// ListJobs returns every tracked job.
func (jm *JobManager) ListJobs() []*RenderJob {
	jm.mu.RLock()
	defer jm.mu.RUnlock()
	jobs := make([]*RenderJob, 0, len(jm.jobs))
	for _, j := range jm.jobs {
		jobs = append(jobs, j)
	}
	return jobs
}

// UpdateJob atomically mutates the job named id.
func (jm *JobManager) UpdateJob(id string, fn func(*RenderJob)) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()
	job, ok := jm.jobs[id]
	if !ok {
		return fmt.Errorf("monitor: job not found: %s", id)
	}
	fn(job)
	return nil
}
