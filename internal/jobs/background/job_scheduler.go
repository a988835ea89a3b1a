package background

import (
	"context"
	"sort"
	"sync"
	"time"

	"stockroom/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Intervals configures how often each job runs. Zero disables a job.
type Intervals struct {
	LowStockScan     time.Duration
	AnalyticsRefresh time.Duration
}

// JobScheduler runs the periodic inventory jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	alerts    *jobs.InventoryAlertService
	refresher *jobs.AnalyticsRefreshService
	logger    *zap.Logger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(alerts *jobs.InventoryAlertService, refresher *jobs.AnalyticsRefreshService,
	intervals Intervals, logger *zap.Logger) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alerts:    alerts,
		refresher: refresher,
		logger:    logger,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.registerJobs(intervals); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler", zap.Int("jobs", len(js.jobs)))
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(intervals Intervals) error {
	if intervals.AnalyticsRefresh > 0 {
		if err := js.add("analytics-refresh", intervals.AnalyticsRefresh, js.refresher.ScheduledAnalyticsRefresh); err != nil {
			return err
		}
	}
	if intervals.LowStockScan > 0 {
		if err := js.add("low-stock-scan", intervals.LowStockScan, js.alerts.ScheduledLowStockCheck); err != nil {
			return err
		}
	}
	return nil
}

func (js *JobScheduler) add(name string, interval time.Duration, task func(context.Context) error) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if err := task(ctx); err != nil {
				js.logger.Warn("background job failed", zap.String("job", name), zap.Error(err))
			}
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	return nil
}

// JobNames lists the registered jobs in name order.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
