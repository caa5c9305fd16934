package jobs

import (
	"gamehub/internal/config"
	"gamehub/internal/logger"
	"gamehub/internal/service"
)

// JobRunner executes background jobs against the ledger. Jobs only read
// snapshots; the command path remains the only writer.
type JobRunner struct {
	cfg        *config.Config
	dashboards service.DashboardService
}

func NewJobRunner(cfg *config.Config, dashboards service.DashboardService) *JobRunner {
	return &JobRunner{
		cfg:        cfg,
		dashboards: dashboards,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.cfg
}

// runWithRecovery keeps a panicking job from taking the scheduler down.
func (jr *JobRunner) runWithRecovery(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", name, "panic", r)
		}
	}()
	logger.Debug("job started", "job", name)
	fn()
	logger.Debug("job finished", "job", name)
}
