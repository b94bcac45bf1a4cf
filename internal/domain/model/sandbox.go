package model

import "time"

type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "easy"
	DifficultyMedium TaskDifficulty = "medium"
	DifficultyHard   TaskDifficulty = "hard"
)

// TaskStatus is derived from submission history at read time, never stored.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not-started"
	StatusAttempted  TaskStatus = "attempted"
	StatusSolved     TaskStatus = "solved"
)

type SandboxTask struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Language    string         `db:"language" json:"language"`
	InitialCode *string        `db:"initial_code" json:"initial_code,omitempty"`
	Solution    string         `db:"solution" json:"solution"`
	Difficulty  TaskDifficulty `db:"difficulty" json:"difficulty"`
	Tags        StringList     `db:"tags" json:"tags"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`

	Status TaskStatus `db:"-" json:"status,omitempty"`
}

// SandboxSubmission is immutable once written. A re-submission creates a new
// row; rows disappear only when their task is deleted.
type SandboxSubmission struct {
	ID        string    `db:"id" json:"id"`
	TaskID    string    `db:"task_id" json:"task_id"`
	Code      string    `db:"code" json:"code"`
	IsCorrect bool      `db:"is_correct" json:"is_correct"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TaskSubmissionStats is the grouped submission count used to derive a
// task's status.
type TaskSubmissionStats struct {
	TaskID  string `db:"task_id"`
	Total   int    `db:"total"`
	Correct int    `db:"correct"`
}

func (s TaskSubmissionStats) Status() TaskStatus {
	switch {
	case s.Correct > 0:
		return StatusSolved
	case s.Total > 0:
		return StatusAttempted
	default:
		return StatusNotStarted
	}
}
