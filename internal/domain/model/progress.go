package model

import "time"

type Progress struct {
	ID        string    `db:"id" json:"id"`
	LessonID  string    `db:"lesson_id" json:"lesson_id"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProgressOverview is the global dashboard summary.
type ProgressOverview struct {
	TotalCourses       int `json:"total_courses"`
	TotalLessons       int `json:"total_lessons"`
	CompletedLessons   int `json:"completed_lessons"`
	TotalNotes         int `json:"total_notes"`
	TotalBookmarks     int `json:"total_bookmarks"`
	ProgressPercentage int `json:"progress_percentage"`
}

// CourseProgress is one per-course row of the progress summary.
type CourseProgress struct {
	CourseID             string     `db:"course_id" json:"course_id"`
	Title                string     `db:"title" json:"title"`
	Completed            int        `db:"completed" json:"completed"`
	Total                int        `db:"total" json:"total"`
	Progress             int        `db:"-" json:"progress"`
	LastAccessed         *time.Time `db:"last_accessed" json:"last_accessed,omitempty"`
	LastAccessedLessonID *string    `db:"last_accessed_lesson_id" json:"last_accessed_lesson_id,omitempty"`
}
