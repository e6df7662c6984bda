package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/drydock/internal/config"
	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/timesheet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Lister is the part of timesheet.Service the scheduler needs.
type Lister interface {
	List(ctx context.Context, f timesheet.Filter, s timesheet.Sort) ([]timesheet.Row, error)
}

type job struct {
	cfg   config.ExportConfig
	sched cron.Schedule
}

// Scheduler runs the configured exports on their cron schedules.
type Scheduler struct {
	jobs   []job
	lister Lister
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler parses every job's schedule up front.
func NewScheduler(exports []config.ExportConfig, lister Lister, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{lister: lister, logger: logger, now: time.Now}
	for _, e := range exports {
		sched, err := cronParser.Parse(e.Schedule)
		if err != nil {
			return nil, fmt.Errorf("export: job %s: schedule %q: %w", e.Name, e.Schedule, err)
		}
		s.jobs = append(s.jobs, job{cfg: e, sched: sched})
	}
	return s, nil
}

// Jobs returns the configured job names in order.
func (s *Scheduler) Jobs() []string {
	names := make([]string, len(s.jobs))
	for i, j := range s.jobs {
		names[i] = j.cfg.Name
	}
	return names
}

// Run blocks until ctx is cancelled, firing each job at its next scheduled
// time. A failed export is logged and the job waits for its next slot.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.jobs) == 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, j := range s.jobs {
		j := j
		g.Go(func() error {
			s.loop(ctx, j)
			return nil
		})
	}
	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, j job) {
	timer := time.NewTimer(s.nextDelay(j))
	defer timer.Stop()

	s.logger.Info("export scheduled",
		zap.String("job", j.cfg.Name),
		zap.String("schedule", j.cfg.Schedule),
		zap.Time("next", j.sched.Next(s.now())))

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if _, err := s.run(ctx, j); err != nil {
				s.logger.Error("export failed", zap.String("job", j.cfg.Name), zap.Error(err))
			}
			timer.Reset(s.nextDelay(j))
		}
	}
}

// nextDelay is the time until the job's next fire time, never negative.
func (s *Scheduler) nextDelay(j job) time.Duration {
	now := s.now()
	d := j.sched.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// RunJob runs the named job immediately and returns the written path.
func (s *Scheduler) RunJob(ctx context.Context, name string) (string, error) {
	for _, j := range s.jobs {
		if j.cfg.Name == name {
			return s.run(ctx, j)
		}
	}
	return "", fmt.Errorf("export: unknown job %q", name)
}

// Window returns the inclusive date range a job run at now covers: the
// rangeDays days before now's date.
func Window(now time.Time, rangeDays int) (models.Date, models.Date) {
	today := models.NewDate(now)
	end := models.NewDate(today.AddDate(0, 0, -1))
	start := models.NewDate(today.AddDate(0, 0, -rangeDays))
	return start, end
}

func (s *Scheduler) run(ctx context.Context, j job) (string, error) {
	started := s.now()
	start, end := Window(started, j.cfg.RangeDays)
	f := timesheet.Filter{StartDate: &start, EndDate: &end}
	if j.cfg.StaffID != 0 {
		id := j.cfg.StaffID
		f.StaffID = &id
	}
	if j.cfg.ProjectID != 0 {
		id := j.cfg.ProjectID
		f.ProjectID = &id
	}

	rows, err := s.lister.List(ctx, f, timesheet.Sort{Field: "date"})
	if err != nil {
		return "", fmt.Errorf("export: job %s: %w", j.cfg.Name, err)
	}

	if err := os.MkdirAll(j.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("export: job %s: %w", j.cfg.Name, err)
	}
	path := filepath.Join(j.cfg.Dir, fmt.Sprintf("%s-%s.xlsx", j.cfg.Name, models.NewDate(started)))
	if err := writeFile(path, rows); err != nil {
		return "", fmt.Errorf("export: job %s: %w", j.cfg.Name, err)
	}

	s.logger.Info("export written",
		zap.String("job", j.cfg.Name),
		zap.String("path", path),
		zap.Int("rows", len(rows)),
		zap.Stringer("from", start),
		zap.Stringer("to", end),
		zap.Duration("elapsed", time.Since(started)))
	return path, nil
}

// writeFile writes the workbook to a temp file and renames it into place
// so readers never see a partial workbook.
func writeFile(path string, rows []timesheet.Row) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.xlsx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := WriteXLSX(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
