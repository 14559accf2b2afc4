package report

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type (
	// DashboardSummary is the per-month session tally shown on the dashboard.
	DashboardSummary struct {
		TotalSessions     int     `json:"total_sessions"`
		DraftSessions     int     `json:"draft_sessions"`
		CompletedSessions int     `json:"completed_sessions"`
		MissedSessions    int     `json:"missed_sessions"`
		CancelledSessions int     `json:"cancelled_sessions"`
		CompletionRate    float64 `json:"completion_rate"` // percentage, one decimal
	}

	// CourseLoad is the number of sessions one trainer holds for one course.
	CourseLoad struct {
		CourseID     int    `json:"course_id"`
		CourseName   string `json:"course_name"`
		SessionCount int    `json:"session_count"`
	}

	TrainerLoad struct {
		TrainerID   int          `json:"trainer_id"`
		TrainerName string       `json:"trainer_name"`
		Courses     []CourseLoad `json:"courses"`
	}

	MissedSession struct {
		ID      int       `json:"id"`
		Date    time.Time `json:"date"`
		Trainer string    `json:"trainer"`
		Batch   string    `json:"batch"`
		Course  string    `json:"course"`
		Notes   string    `json:"notes"`
	}

	MissedLessons struct {
		TotalMissed int             `json:"total_missed"`
		Sessions    []MissedSession `json:"sessions"`
	}

	CancelledSession struct {
		ID      int       `json:"id"`
		Date    time.Time `json:"date"`
		Trainer string    `json:"trainer"`
		Batch   string    `json:"batch"`
		Notes   string    `json:"notes"`
	}

	CancelledSessions struct {
		TotalCancelled int                `json:"total_cancelled"`
		Sessions       []CancelledSession `json:"sessions"`
	}

	// BatchDuration summarizes one batch's session span. Start and end are
	// null when the batch holds no sessions yet.
	BatchDuration struct {
		BatchID           int       `json:"batch_id"`
		BatchName         string    `json:"batch_name"`
		Program           string    `json:"program"`
		TotalSessions     int       `json:"total_sessions"`
		CompletedSessions int       `json:"completed_sessions"`
		StartDate         null.Time `json:"start_date"`
		EndDate           null.Time `json:"end_date"`
		DurationDays      int       `json:"duration_days"`
	}
)
