// Command seed bootstraps the application schema, resets the sandbox demo
// tables and loads demo content.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"learndeck/internal/domain/model"
	"learndeck/internal/domain/repository"
	"learndeck/internal/platform/config"
	"learndeck/internal/platform/database"
	"learndeck/internal/platform/logger"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT NOT NULL,
		tags JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS chapters (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id TEXT PRIMARY KEY,
		chapter_id TEXT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		video_url TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		lesson_id TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		lesson_id TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id TEXT PRIMARY KEY,
		lesson_id TEXT NOT NULL UNIQUE REFERENCES lessons(id) ON DELETE CASCADE,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sandbox_tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		language TEXT NOT NULL DEFAULT 'sql',
		initial_code TEXT,
		solution TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		tags JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sandbox_submissions (
		id TEXT PRIMARY KEY,
		task_id TEXT NOT NULL REFERENCES sandbox_tasks(id) ON DELETE CASCADE,
		code TEXT NOT NULL,
		is_correct BOOLEAN NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS app_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// demoStatements rebuild the tables that submitted sandbox SQL reads and
// writes. They are plain tables in the same database, shared by all sandbox
// sessions.
var demoStatements = []string{
	`DROP TABLE IF EXISTS orders`,
	`DROP TABLE IF EXISTS products`,
	`DROP TABLE IF EXISTS users`,
	`CREATE TABLE users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price INTEGER NOT NULL
	)`,
	`CREATE TABLE orders (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		product_id INTEGER NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL
	)`,
	`INSERT INTO users (name, email) VALUES
		('Alice', 'alice@example.com'),
		('Bob', 'bob@example.com'),
		('Charlie', 'charlie@another.com')`,
	`INSERT INTO products (name, price) VALUES
		('Laptop', 1200),
		('Mouse', 25),
		('Keyboard', 75)`,
	`INSERT INTO orders (user_id, product_id, quantity) VALUES
		(1, 1, 1),
		(1, 3, 1),
		(2, 2, 2)`,
}

func main() {
	config.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database.Connect()
	defer database.Close()

	ctx := context.Background()

	for _, stmt := range schemaStatements {
		if _, err := database.DB.ExecContext(ctx, stmt); err != nil {
			log.Fatal("failed to create schema", zap.Error(err))
		}
	}
	log.Info("application schema ready")

	for _, stmt := range demoStatements {
		if _, err := database.DB.ExecContext(ctx, stmt); err != nil {
			log.Fatal("failed to reset sandbox demo tables", zap.Error(err))
		}
	}
	log.Info("sandbox demo tables seeded")

	seedContent(ctx, log)
	seedTasks(ctx, log)

	log.Info("seeding complete")
}

func seedContent(ctx context.Context, log *zap.Logger) {
	courseRepo := repository.NewPgCourseRepository(database.DB)
	lessonRepo := repository.NewPgLessonRepository(database.DB)

	now := time.Now().UTC()
	course := &model.Course{
		ID:          uuid.NewString(),
		Title:       "Demo Course",
		Slug:        slug.Make("Demo Course"),
		Description: "A demo course showing what the platform can do.",
		Tags:        model.StringList{"demo", "getting-started"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := courseRepo.Create(ctx, course); err != nil {
		log.Fatal("failed to seed course", zap.Error(err))
	}

	chapters := []struct {
		title   string
		lessons []model.Lesson
	}{
		{
			title: "Chapter 1: Introduction",
			lessons: []model.Lesson{
				{Title: "Lesson 1.1: First Look", Content: "# Welcome!\n\nThis is the first lesson. You can use **Markdown** here, including `code` and more.", Position: 1},
				{Title: "Lesson 1.2: Core Concepts", Content: "# Core Concepts\n\n- **Concept 1:** description.\n- **Concept 2:** description.", Position: 2},
			},
		},
		{
			title: "Chapter 2: Advanced Topics",
			lessons: []model.Lesson{
				{Title: "Lesson 2.1: Going Deeper", Content: "# Going Deeper\n\nNested lists:\n\n1. Item 1\n   - Subitem 1.1\n   - Subitem 1.2\n2. Item 2", Position: 1},
			},
		},
	}

	for i, def := range chapters {
		chapter := &model.Chapter{
			ID:        uuid.NewString(),
			CourseID:  course.ID,
			Title:     def.title,
			Position:  i + 1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := courseRepo.CreateChapter(ctx, chapter); err != nil {
			log.Fatal("failed to seed chapter", zap.Error(err))
		}
		for _, l := range def.lessons {
			lesson := l
			lesson.ID = uuid.NewString()
			lesson.ChapterID = chapter.ID
			lesson.CreatedAt = now
			lesson.UpdatedAt = now
			if err := lessonRepo.Create(ctx, &lesson); err != nil {
				log.Fatal("failed to seed lesson", zap.Error(err))
			}
		}
	}
	log.Info("demo course seeded", zap.String("course_id", course.ID))
}

func seedTasks(ctx context.Context, log *zap.Logger) {
	taskRepo := repository.NewPgSandboxTaskRepository(database.DB)

	now := time.Now().UTC()
	selectAll := "SELECT * FROM users;"
	selectAlice := "SELECT * FROM users WHERE name = 'Alice';"

	tasks := []*model.SandboxTask{
		{
			ID:          uuid.NewString(),
			Title:       "Select everything from users",
			Description: "Write a query that selects all rows from the `users` table.",
			Language:    "sql",
			Difficulty:  model.DifficultyEasy,
			Tags:        model.StringList{"SELECT", "FROM"},
			InitialCode: &selectAll,
			Solution:    selectAll,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Select users by name",
			Description: "Write a query that selects the users named `Alice`.",
			Language:    "sql",
			Difficulty:  model.DifficultyEasy,
			Tags:        model.StringList{"SELECT", "WHERE"},
			InitialCode: &selectAlice,
			Solution:    selectAlice,
			CreatedAt:   now.Add(time.Second),
			UpdatedAt:   now.Add(time.Second),
		},
	}

	for _, task := range tasks {
		if err := taskRepo.Create(ctx, task); err != nil {
			log.Fatal("failed to seed sandbox task", zap.Error(err))
		}
	}
	log.Info("sandbox tasks seeded", zap.Int("count", len(tasks)))
}
