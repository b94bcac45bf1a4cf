package model

import "time"

type Course struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Description string     `db:"description" json:"description"`
	Tags        StringList `db:"tags" json:"tags"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	Chapters []Chapter `db:"-" json:"chapters,omitempty"`
}

// CourseSummary is the listing shape: a course plus counters derived from its
// lesson and progress rows.
type CourseSummary struct {
	Course
	ChaptersCount    int `db:"chapters_count" json:"chapters_count"`
	LessonsCount     int `db:"lessons_count" json:"lessons_count"`
	CompletedLessons int `db:"completed_lessons" json:"completed_lessons"`
	Progress         int `db:"-" json:"progress"`
}

type Chapter struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Title     string    `db:"title" json:"title"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Lessons []Lesson `db:"-" json:"lessons,omitempty"`
}

type Lesson struct {
	ID        string    `db:"id" json:"id"`
	ChapterID string    `db:"chapter_id" json:"chapter_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	VideoURL  *string   `db:"video_url" json:"video_url,omitempty"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Completed bool `db:"completed" json:"completed"`
}

// LessonDetail augments a lesson with its rendered content and the
// surrounding hierarchy for breadcrumbs.
type LessonDetail struct {
	Lesson
	ContentHTML  string `json:"content_html"`
	ChapterTitle string `json:"chapter_title"`
	CourseID     string `json:"course_id"`
	CourseTitle  string `json:"course_title"`
}
