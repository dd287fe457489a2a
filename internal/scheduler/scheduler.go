// Package scheduler runs the periodic planning pass.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crucial707/dayplan/internal/metrics"
	"github.com/crucial707/dayplan/internal/planner"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

// DefaultSpec runs the pass at the top of every hour.
const DefaultSpec = "0 * * * *"

// Planner recomputes every user's slack on a cron schedule and publishes
// the over-budget count.
type Planner struct {
	Users  *repo.UserRepo
	Loader *snapshot.Loader
}

// Run registers the pass under spec and blocks until ctx is done, then
// waits for a running pass to finish.
func (p *Planner) Run(ctx context.Context, spec string) error {
	if spec == "" {
		spec = DefaultSpec
	}
	c := cron.New(cron.WithLocation(p.Loader.Location()), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() { p.Pass(ctx) }); err != nil {
		return err
	}
	slog.Info("scheduler: planning pass registered", "spec", spec)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// Pass plans every user once and returns the number of over-budget tasks.
func (p *Planner) Pass(ctx context.Context) (int, error) {
	start := time.Now()
	over, err := p.pass(ctx)
	metrics.RecordPlanPass(over, time.Since(start).Seconds(), err)
	if err != nil {
		slog.Error("scheduler: planning pass failed", "error", err)
		return 0, err
	}
	slog.Info("scheduler: planning pass done", "over_budget", over, "duration_ms", time.Since(start).Milliseconds())
	return over, nil
}

func (p *Planner) pass(ctx context.Context) (int, error) {
	ids, err := p.Users.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	today := p.Loader.Today()
	over := 0
	for _, id := range ids {
		snap, err := p.Loader.Load(ctx, id, today)
		if err != nil {
			return over, err
		}
		for _, ts := range planner.Plan(today, snap.Schedules, snap.Tasks, snap.Settings) {
			if !ts.OverBudget {
				continue
			}
			over++
			slog.Warn("scheduler: task over budget",
				"user_id", id,
				"task_id", ts.Task.ID,
				"deadline", ts.Task.Deadline.String(),
				"slack_hours", ts.SlackHours)
		}
	}
	return over, nil
}
