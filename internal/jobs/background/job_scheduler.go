package background

import (
	"context"
	"log"
	"sync"
	"time"

	"menucraft/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the periodic catalog maintenance jobs
type JobScheduler struct {
	scheduler    gocron.Scheduler
	foodItemRepo repositories.FoodItemRepository
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(foodItemRepo repositories.FoodItemRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		foodItemRepo: foodItemRepo,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Daily availability reset - the service day rolls over at 04:00
	resetJob, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(4, 0, 0))),
		gocron.NewTask(js.resetDailyAvailability, context.Background()),
		gocron.WithName("daily-availability-reset"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create daily reset job: %v", err)
	} else {
		js.jobs["daily-reset"] = resetJob
	}

	// Expired discount purge - every hour
	purgeJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.purgeExpiredDiscounts, context.Background()),
		gocron.WithName("expired-discount-purge"),
	)
	if err != nil {
		log.Printf("Failed to create discount purge job: %v", err)
	} else {
		js.jobs["discount-purge"] = purgeJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) resetDailyAvailability(ctx context.Context) {
	count, err := js.foodItemRepo.ResetDailyAvailability(ctx)
	if err != nil {
		log.Printf("Daily availability reset failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Daily availability reset reactivated %d items", count)
	}
}

func (js *JobScheduler) purgeExpiredDiscounts(ctx context.Context) {
	count, err := js.foodItemRepo.PurgeExpiredDiscounts(ctx)
	if err != nil {
		log.Printf("Expired discount purge failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Purged %d expired discounts", count)
	}
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}
	js.jobs[name] = job
	return nil
}
