package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"

	"learndeck/internal/api/handler"
	"learndeck/internal/api/middleware"
	"learndeck/internal/app/service"
	"learndeck/internal/common/security"
	"learndeck/internal/platform/config"
)

type Services struct {
	Auth     *service.AuthService
	Course   *service.CourseService
	Lesson   *service.LessonService
	Note     *service.NoteService
	Bookmark *service.BookmarkService
	Progress *service.ProgressService
	Sandbox  *service.SandboxService
	Chat     *service.ChatService
	Data     *service.DataService
}

func NewRouter(svc Services) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the token from the Authorization header or the "jwt" cookie
	// and puts claims in context; enforcement happens per route group.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Uploaded files are served statically.
	uploadsDir := http.Dir(config.AppConfig.UploadDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(svc.Auth)
		v1.Group(func(public chi.Router) {
			authHandler.RegisterRoutes(public)
		})

		v1.Group(func(private chi.Router) {
			private.Use(middleware.Authenticator)

			private.Route("/courses", handler.NewCourseHandler(svc.Course).RegisterRoutes)
			private.Route("/chapters", handler.NewChapterHandler(svc.Course, svc.Lesson).RegisterRoutes)
			private.Route("/lessons", handler.NewLessonHandler(svc.Lesson, svc.Note, svc.Bookmark).RegisterRoutes)
			private.Route("/notes", handler.NewNoteHandler(svc.Note).RegisterRoutes)
			private.Route("/bookmarks", handler.NewBookmarkHandler(svc.Bookmark).RegisterRoutes)
			private.Route("/progress", handler.NewProgressHandler(svc.Progress).RegisterRoutes)
			private.Route("/sandbox", handler.NewSandboxHandler(svc.Sandbox).RegisterRoutes)
			private.Route("/data", handler.NewDataHandler(svc.Data).RegisterRoutes)
			private.Route("/settings", handler.NewSettingsHandler(svc.Auth).RegisterRoutes)

			handler.NewChatHandler(svc.Chat).RegisterRoutes(private)
			handler.NewUploadHandler().RegisterRoutes(private)
		})
	})

	return r
}
