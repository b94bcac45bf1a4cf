package model

import "time"

type Note struct {
	ID        string    `db:"id" json:"id"`
	LessonID  string    `db:"lesson_id" json:"lesson_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Populated by the annotated listing only.
	LessonTitle string `db:"lesson_title" json:"lesson_title,omitempty"`
	CourseTitle string `db:"course_title" json:"course_title,omitempty"`
}

type Bookmark struct {
	ID        string    `db:"id" json:"id"`
	LessonID  string    `db:"lesson_id" json:"lesson_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	LessonTitle string `db:"lesson_title" json:"lesson_title,omitempty"`
	CourseID    string `db:"course_id" json:"course_id,omitempty"`
	CourseTitle string `db:"course_title" json:"course_title,omitempty"`
}
