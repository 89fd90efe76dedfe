package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Job is one periodic housekeeping task. Run returns how many items it removed.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) (int, error)
}

// Runner drives a fixed set of jobs, one worker goroutine per job, until the
// context passed to Start is cancelled.
type Runner struct {
	jobs []Job
	log  zerolog.Logger
	wg   sync.WaitGroup
}

func NewRunner(log zerolog.Logger, jobs ...Job) *Runner {
	r := &Runner{log: log}
	for _, j := range jobs {
		if j.Interval <= 0 || j.Run == nil {
			log.Debug().Str("job", j.Name).Msg("job disabled")
			continue
		}
		r.jobs = append(r.jobs, j)
	}
	return r
}

// Len reports how many jobs will run.
func (r *Runner) Len() int { return len(r.jobs) }

// Start launches the workers. It does not block.
func (r *Runner) Start(ctx context.Context) {
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.runWorker(ctx, j)
	}
}

// Wait blocks until every worker has returned.
func (r *Runner) Wait() { r.wg.Wait() }

func (r *Runner) runWorker(ctx context.Context, j Job) {
	defer r.wg.Done()
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := j.Run(ctx)
			if err != nil {
				r.log.Error().Err(err).Str("job", j.Name).Msg("job failed")
				continue
			}
			if n > 0 {
				r.log.Debug().Str("job", j.Name).Int("removed", n).Msg("job done")
			}
		}
	}
}
