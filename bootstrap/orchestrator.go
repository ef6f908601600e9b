package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/logger"
)

// Status is the orchestrator lifecycle state.
type Status string

const (
	// StatusPending means Run has not been called yet.
	StatusPending Status = "pending"
	// StatusRunning means a startup run is in progress.
	StatusRunning Status = "running"
	// StatusCompleted means every step succeeded.
	StatusCompleted Status = "completed"
	// StatusDegraded means all required steps succeeded but at least one
	// optional step failed.
	StatusDegraded Status = "degraded"
	// StatusFailed means a required step failed; later steps were skipped.
	StatusFailed Status = "failed"
)

// Step is one unit of the startup plan.
type Step struct {
	// Name identifies the step in logs and fault reports.
	Name string
	// Required marks a step whose failure aborts the run.
	Required bool
	// Run performs the step.
	Run func(ctx context.Context) error
}

// StepFault records an optional step that failed during a run.
type StepFault struct {
	Step string
	Err  error
}

// Report is the outcome of a startup run.
type Report struct {
	Status   Status
	Faults   []StepFault
	Duration time.Duration
}

// Orchestrator executes a startup plan sequentially: step N starts only after
// step N-1 reached a terminal outcome. A required failure aborts the run; an
// optional failure is recorded and the run continues.
type Orchestrator struct {
	plan []Step
	log  *logger.Logger

	mu     sync.Mutex
	status Status
}

// NewOrchestrator creates an orchestrator for the given plan.
func NewOrchestrator(plan []Step) *Orchestrator {
	return &Orchestrator{
		plan:   plan,
		log:    logger.WithComponent("bootstrap"),
		status: StatusPending,
	}
}

// Status returns the current lifecycle state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Run executes the plan. On a required failure it returns the report together
// with a STEP_FAILED error naming the step; on success the error is nil and
// the report is Completed or Degraded.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	o.setStatus(StatusRunning)

	report := &Report{}

	for _, step := range o.plan {
		if err := ctx.Err(); err != nil {
			o.setStatus(StatusFailed)
			report.Status = StatusFailed
			report.Duration = time.Since(start)
			return report, errors.StepFailed(step.Name, err)
		}

		stepStart := time.Now()
		err := o.runStep(ctx, step)
		if err == nil {
			o.log.Debug("Startup step completed", map[string]interface{}{
				logger.FieldStep:     step.Name,
				logger.FieldDuration: time.Since(stepStart).Milliseconds(),
			})
			continue
		}

		if step.Required {
			o.log.Error("Required startup step failed", map[string]interface{}{
				logger.FieldStep:  step.Name,
				logger.FieldError: err.Error(),
			})
			o.setStatus(StatusFailed)
			report.Status = StatusFailed
			report.Duration = time.Since(start)
			return report, errors.StepFailed(step.Name, err)
		}

		o.log.Warn("Optional startup step failed, continuing", map[string]interface{}{
			logger.FieldStep:  step.Name,
			logger.FieldError: err.Error(),
		})
		report.Faults = append(report.Faults, StepFault{Step: step.Name, Err: err})
	}

	report.Duration = time.Since(start)
	if len(report.Faults) > 0 {
		report.Status = StatusDegraded
	} else {
		report.Status = StatusCompleted
	}
	o.setStatus(report.Status)

	o.log.Info("Startup finished", map[string]interface{}{
		logger.FieldStatus:   string(report.Status),
		logger.FieldDuration: report.Duration.Milliseconds(),
		"faults":             len(report.Faults),
	})
	return report, nil
}

// runStep invokes the step, converting a panicking step into an error so one
// misbehaving capability cannot take down the whole startup.
func (o *Orchestrator) runStep(ctx context.Context, step Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Internal("startup step panicked").WithDetail("panic", r)
		}
	}()
	return step.Run(ctx)
}

func (o *Orchestrator) setStatus(s Status) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}
