package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// loadPhoto resolves a photo through its student, 404 before the access
// check.
func (s *Server) loadPhoto(r *http.Request, action services.Action) (models.ShapePhoto, services.Caller, error) {
	caller, err := s.caller(r)
	if err != nil {
		return models.ShapePhoto{}, services.Caller{}, err
	}
	photo, err := services.GetShapePhoto(s.DB, chi.URLParam(r, "photoId"))
	if err != nil {
		return models.ShapePhoto{}, services.Caller{}, err
	}
	st, err := services.GetStudent(s.DB, photo.StudentID)
	if err != nil {
		return models.ShapePhoto{}, services.Caller{}, err
	}
	if err := services.Authorize(caller, action, services.StudentResource(services.KindPhoto, st)); err != nil {
		return models.ShapePhoto{}, services.Caller{}, err
	}
	return photo, caller, nil
}

func (s *Server) ListPhotos(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadStudent(r, services.KindPhoto, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	photos, err := services.ListShapePhotos(s.DB, st.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]PhotoDTO, 0, len(photos))
	for _, photo := range photos {
		items = append(items, buildPhotoDTO(photo))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadStudent(r, services.KindPhoto, services.ActionCreate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxPhotoBytes)
	if err := r.ParseMultipartForm(s.Config.MaxPhotoBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Photo exceeds the maximum allowed size")
		return
	}
	var caption *string
	if value := strings.TrimSpace(r.FormValue("caption")); value != "" {
		caption = &value
	}
	var takenAt *time.Time
	if raw := strings.TrimSpace(r.FormValue("takenAt")); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Field \"takenAt\" must be an RFC 3339 timestamp")
			return
		}
		takenAt = &parsed
	}
	upload, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Field \"file\" is required")
		return
	}
	defer func() { _ = upload.Close() }()
	contentType := header.Header.Get("Content-Type")
	extension, ok := photoExtensions[contentType]
	if !ok {
		WriteError(w, http.StatusBadRequest, "Only JPEG, PNG and WebP images are accepted")
		return
	}
	payload, err := io.ReadAll(upload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Photo exceeds the maximum allowed size")
		return
	}

	photo, err := services.UploadShapePhoto(r.Context(), s.DB, s.Media, services.UploadPhotoInput{
		StudentID:   st.ID,
		Caption:     caption,
		TakenAt:     takenAt,
		Payload:     payload,
		ContentType: contentType,
		Extension:   extension,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildPhotoDTO(photo))
}

func (s *Server) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, _, err := s.loadPhoto(r, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildPhotoDTO(photo))
}

func (s *Server) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photo, _, err := s.loadPhoto(r, services.ActionDelete)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := services.DeleteShapePhoto(r.Context(), s.DB, s.Media, photo); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
