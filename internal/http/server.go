package httpapi

import (
	"net/http"
	"time"

	"gymcore-backend-go/internal/config"
	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Media      *services.MediaStore
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, media *services.MediaStore, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    time.Duration(cfg.TokenTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Media:      media,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.With(WithAuth(s.Tokens)).Get("/auth/me", s.Me)

		api.Route("/invites", func(invites chi.Router) {
			invites.Use(WithAuth(s.Tokens))
			invites.Use(RequireRole(models.RoleAdmin))
			invites.Get("/", s.ListInvites)
			invites.Post("/", s.CreateInvite)
		})

		api.Route("/students", func(students chi.Router) {
			students.Use(WithAuth(s.Tokens))
			students.Get("/", s.ListStudents)
			students.With(RequireAnyRole(models.RoleProfessor, models.RoleAdmin)).Post("/", s.CreateStudent)

			students.Route("/{studentId}", func(student chi.Router) {
				student.Get("/", s.GetStudent)
				student.Put("/", s.UpdateStudent)
				student.Delete("/", s.DeleteStudent)

				student.Get("/history", s.ListHistory)
				student.Get("/history/latest", s.LatestHistory)
				student.Post("/history", s.CreateHistory)

				// Role rules for uploads live in the policy so absence
				// still reports 404 ahead of any denial.
				student.Get("/files", s.ListFiles)
				student.Post("/files", s.UploadFile)

				student.Get("/photos", s.ListPhotos)
				student.Post("/photos", s.UploadPhoto)
			})
		})

		api.Route("/history/{recordId}", func(history chi.Router) {
			history.Use(WithAuth(s.Tokens))
			history.Get("/", s.GetHistory)
			history.Put("/", s.UpdateHistory)
			history.Delete("/", s.DeleteHistory)
		})

		api.Route("/files/{fileId}", func(files chi.Router) {
			files.Use(WithAuth(s.Tokens))
			files.Get("/", s.GetFile)
			files.Delete("/", s.DeleteFile)
		})

		api.Route("/photos/{photoId}", func(photos chi.Router) {
			photos.Use(WithAuth(s.Tokens))
			photos.Get("/", s.GetPhoto)
			photos.Delete("/", s.DeletePhoto)
		})

		api.Route("/professors", func(professors chi.Router) {
			professors.Use(WithAuth(s.Tokens))
			professors.Get("/", s.ListProfessors)
			professors.With(RequireRole(models.RoleAdmin)).Post("/", s.CreateProfessor)
			professors.Get("/{professorId}", s.GetProfessor)
			professors.With(RequireRole(models.RoleAdmin)).Put("/{professorId}", s.UpdateProfessor)
			professors.With(RequireRole(models.RoleAdmin)).Delete("/{professorId}", s.DeleteProfessor)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Use(RequireRole(models.RoleAdmin))
			admin.Get("/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
