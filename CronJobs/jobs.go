package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ImageVault/Models"
	"ImageVault/email"
)

// Scheduler owns the background jobs: the deadline sweep, the counter
// reconciliation audit and the daily report mail.
type Scheduler struct {
	cronScheduler *cron.Cron
	db            *gorm.DB
	mailer        *email.Sender
}

func NewScheduler(db *gorm.DB, mailer *email.Sender) *Scheduler {
	return &Scheduler{
		cronScheduler: cron.New(),
		db:            db,
		mailer:        mailer,
	}
}

// Start registers and launches the jobs.
func (s *Scheduler) Start() error {
	// Hourly: close out tasks whose upload deadline has passed.
	if _, err := s.cronScheduler.AddFunc("0 * * * *", func() {
		if err := s.SweepDeadlines(time.Now()); err != nil {
			log.Printf("Deadline sweep failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("error scheduling deadline sweep: %w", err)
	}

	// Nightly: recompute counters from image rows and flag divergence.
	if _, err := s.cronScheduler.AddFunc("30 2 * * *", func() {
		if err := s.ReconcileCounters(); err != nil {
			log.Printf("Counter reconciliation failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("error scheduling reconciliation: %w", err)
	}

	// 19:00 daily report.
	if _, err := s.cronScheduler.AddFunc("0 19 * * *", func() {
		if err := s.SendDailyReport(); err != nil {
			log.Printf("Daily report failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("error scheduling daily report: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Background scheduler started")
	return nil
}

// Stop terminates the scheduler.
func (s *Scheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Background scheduler stopped")
	}
}

// SweepDeadlines marks open/in-progress tasks whose end_date lies before
// today as completed. Completed and closed tasks are never touched, so a
// manual close cannot be regressed.
func (s *Scheduler) SweepDeadlines(now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	result := s.db.Model(&Models.Task{}).
		Where("status IN ?", []string{Models.TaskOpen, Models.TaskInProgress}).
		Where("end_date IS NOT NULL AND end_date < ?", today).
		Update("status", Models.TaskCompleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Deadline sweep completed %d task(s)", result.RowsAffected)
	}
	return nil
}

type taskRecount struct {
	ID            uint
	Title         string
	UploadedCount int
	ApprovedCount int
	RejectedCount int
	Uploaded      int
	Approved      int
	Rejected      int
}

// ReconcileCounters recomputes the per-task counters from image rows as
// ground truth and logs every divergence from the denormalized values.
// It never auto-corrects; divergence means a failed counter update or a
// lost race that a human should look at.
func (s *Scheduler) ReconcileCounters() error {
	var recounts []taskRecount
	err := s.db.Model(&Models.Task{}).
		Select(`tasks.id, tasks.title, tasks.uploaded_count, tasks.approved_count, tasks.rejected_count,
			COUNT(images.id) AS uploaded,
			SUM(CASE WHEN images.status = 'approved' THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN images.status = 'rejected' THEN 1 ELSE 0 END) AS rejected`).
		Joins("LEFT JOIN images ON images.task_id = tasks.id AND images.deleted_at IS NULL").
		Group("tasks.id, tasks.title, tasks.uploaded_count, tasks.approved_count, tasks.rejected_count").
		Scan(&recounts).Error
	if err != nil {
		return err
	}

	divergent := 0
	for _, recount := range recounts {
		if recount.UploadedCount != recount.Uploaded ||
			recount.ApprovedCount != recount.Approved ||
			recount.RejectedCount != recount.Rejected {
			divergent++
			log.Printf("Counter divergence on task %d (%s): stored uploaded=%d approved=%d rejected=%d, actual uploaded=%d approved=%d rejected=%d",
				recount.ID, recount.Title,
				recount.UploadedCount, recount.ApprovedCount, recount.RejectedCount,
				recount.Uploaded, recount.Approved, recount.Rejected)
		}
	}
	log.Printf("Counter reconciliation checked %d task(s), %d divergent", len(recounts), divergent)
	return nil
}

// SendDailyReport computes the day's statistics from image rows and mails
// them.
func (s *Scheduler) SendDailyReport() error {
	if s.mailer == nil || !s.mailer.Config.Enabled() {
		return nil
	}

	var stats email.ReportStats
	counts := map[string]*int64{
		Models.ImageApproved: &stats.TotalApproved,
		Models.ImageRejected: &stats.TotalRejected,
		Models.ImagePending:  &stats.TotalPending,
	}
	if err := s.db.Model(&Models.Image{}).Count(&stats.TotalUploaded).Error; err != nil {
		return err
	}
	for status, dest := range counts {
		if err := s.db.Model(&Models.Image{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return err
		}
	}

	var breakdown []email.ReportTask
	err := s.db.Model(&Models.Task{}).
		Select(`tasks.title,
			COUNT(images.id) AS uploaded,
			SUM(CASE WHEN images.status = 'approved' THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN images.status = 'rejected' THEN 1 ELSE 0 END) AS rejected`).
		Joins("LEFT JOIN images ON images.task_id = tasks.id AND images.deleted_at IS NULL").
		Group("tasks.title").
		Scan(&breakdown).Error
	if err != nil {
		return err
	}
	stats.Breakdown = breakdown

	return s.mailer.SendDailyReport(stats)
}
