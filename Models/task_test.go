package Models

import (
	"testing"
	"time"
)

func TestTaskAcceptsUploads(t *testing.T) {
	now := time.Date(2026, 2, 10, 15, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	todayMorning := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"open without deadline", Task{Status: TaskOpen}, true},
		{"in progress without deadline", Task{Status: TaskInProgress}, true},
		{"completed", Task{Status: TaskCompleted}, false},
		{"closed", Task{Status: TaskClosed}, false},
		{"deadline passed", Task{Status: TaskOpen, EndDate: &yesterday}, false},
		// Day granularity: ending today means uploads are accepted all day.
		{"deadline is today", Task{Status: TaskOpen, EndDate: &todayMorning}, true},
		{"deadline ahead", Task{Status: TaskOpen, EndDate: &tomorrow}, true},
		{"completed even with future deadline", Task{Status: TaskCompleted, EndDate: &tomorrow}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.AcceptsUploads(now); got != tt.expected {
				t.Errorf("AcceptsUploads() = %v, want %v", got, tt.expected)
			}
		})
	}
}
