package email

import (
	"fmt"
	"strings"
	"time"

	"ImageVault/Models"
)

// TaskDetails feeds the task-creation notification.
type TaskDetails struct {
	TaskID       uint
	Title        string
	Description  string
	CategoryName string
	TotalImages  int
	CreatedBy    string
}

// ReportStats feeds the daily report mail.
type ReportStats struct {
	TotalUploaded int64
	TotalApproved int64
	TotalRejected int64
	TotalPending  int64
	Breakdown     []ReportTask
}

// ReportTask is one per-task row of the daily report.
type ReportTask struct {
	Title    string
	Uploaded int64
	Approved int64
	Rejected int64
}

// SendTaskCreated mails the reviewers about a new task.
func (s *Sender) SendTaskCreated(details TaskDetails) error {
	description := details.Description
	if description == "" {
		description = "N/A"
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px;">
			<h2>New Task Created</h2>
			<div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px;">
				<p><strong>Task ID:</strong> %d</p>
				<p><strong>Title:</strong> %s</p>
				<p><strong>Description:</strong> %s</p>
				<p><strong>Category:</strong> %s</p>
				<p><strong>Total Images Required:</strong> %d</p>
				<p><strong>Created By:</strong> %s</p>
				<p><strong>Created At:</strong> %s</p>
			</div>
			<p style="color: #7f8c8d; font-size: 12px;">Automated notification from ImageVault.</p>
		</div>`,
		details.TaskID, details.Title, description, details.CategoryName,
		details.TotalImages, details.CreatedBy, time.Now().Format("2006-01-02 15:04:05"))

	return s.Send(Models.EmailMessage{
		To:      s.Config.ToEmails,
		CC:      s.Config.CCEmails,
		Subject: "New Task Created: " + details.Title,
		Body:    body,
		IsHTML:  true,
	})
}

// SendDailyReport mails the aggregate and per-task statistics.
func (s *Sender) SendDailyReport(stats ReportStats) error {
	var rows strings.Builder
	for _, task := range stats.Breakdown {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td align=\"center\">%d</td><td align=\"center\">%d</td><td align=\"center\">%d</td></tr>",
			task.Title, task.Uploaded, task.Approved, task.Rejected))
	}

	rate := func(part int64) string {
		if stats.TotalUploaded == 0 {
			return "0.0"
		}
		return fmt.Sprintf("%.1f", float64(part)*100/float64(stats.TotalUploaded))
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; max-width: 600px;">
			<h2>Daily Image Statistics Report</h2>
			<p>Report Date: %s</p>
			<div style="background-color: #e8f5e9; padding: 15px; border-radius: 5px;">
				<p><strong>Total Images Uploaded:</strong> %d</p>
				<p><strong>Approved Images:</strong> %d</p>
				<p><strong>Rejected Images:</strong> %d</p>
				<p><strong>Pending Review:</strong> %d</p>
			</div>
			<table style="width: 100%%; border-collapse: collapse;">
				<thead><tr><th>Task</th><th>Uploaded</th><th>Approved</th><th>Rejected</th></tr></thead>
				<tbody>%s</tbody>
			</table>
			<div style="background-color: #fff3cd; padding: 15px; border-radius: 5px;">
				<p>Approval Rate: <strong>%s%%</strong></p>
				<p>Rejection Rate: <strong>%s%%</strong></p>
				<p>Pending Rate: <strong>%s%%</strong></p>
			</div>
			<p style="color: #7f8c8d; font-size: 12px;">Automated daily report from ImageVault.</p>
		</div>`,
		time.Now().Format("2006-01-02"),
		stats.TotalUploaded, stats.TotalApproved, stats.TotalRejected, stats.TotalPending,
		rows.String(), rate(stats.TotalApproved), rate(stats.TotalRejected), rate(stats.TotalPending))

	return s.Send(Models.EmailMessage{
		To:      s.Config.ToEmails,
		CC:      s.Config.CCEmails,
		Subject: fmt.Sprintf("Daily Report - Image Statistics (%s)", time.Now().Format("2006-01-02")),
		Body:    body,
		IsHTML:  true,
	})
}
