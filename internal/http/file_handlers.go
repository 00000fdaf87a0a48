package httpapi

import (
	"io"
	"net/http"
	"strings"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

// loadFile resolves a file record through its student, 404 before the access
// check.
func (s *Server) loadFile(r *http.Request, action services.Action) (models.StudentFile, services.Caller, error) {
	caller, err := s.caller(r)
	if err != nil {
		return models.StudentFile{}, services.Caller{}, err
	}
	file, err := services.GetStudentFile(s.DB, chi.URLParam(r, "fileId"))
	if err != nil {
		return models.StudentFile{}, services.Caller{}, err
	}
	st, err := services.GetStudent(s.DB, file.StudentID)
	if err != nil {
		return models.StudentFile{}, services.Caller{}, err
	}
	if err := services.Authorize(caller, action, services.StudentResource(services.KindFile, st)); err != nil {
		return models.StudentFile{}, services.Caller{}, err
	}
	return file, caller, nil
}

func (s *Server) ListFiles(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadStudent(r, services.KindFile, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	files, err := services.ListStudentFiles(s.DB, st.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]FileDTO, 0, len(files))
	for _, file := range files {
		items = append(items, buildFileDTO(file))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) UploadFile(w http.ResponseWriter, r *http.Request) {
	st, caller, err := s.loadStudent(r, services.KindFile, services.ActionCreate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxFileBytes)
	if err := r.ParseMultipartForm(s.Config.MaxFileBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "File exceeds the maximum allowed size")
		return
	}
	fileType, ok := models.ParseFileType(r.FormValue("fileType"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "Field \"fileType\" must be TRAINING or DIET")
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		WriteError(w, http.StatusBadRequest, "Field \"title\" is required")
		return
	}
	var description *string
	if value := strings.TrimSpace(r.FormValue("description")); value != "" {
		description = &value
	}
	upload, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Field \"file\" is required")
		return
	}
	defer func() { _ = upload.Close() }()
	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" {
		WriteError(w, http.StatusBadRequest, "Only PDF files are accepted")
		return
	}
	payload, err := io.ReadAll(upload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "File exceeds the maximum allowed size")
		return
	}

	professorID := caller.ProfessorID
	if caller.Role == models.RoleAdmin {
		// Admin uploads land on the student's own professor.
		professorID = st.ProfessorID
	}
	file, err := services.UploadStudentFile(r.Context(), s.DB, s.Media, services.UploadFileInput{
		StudentID:   st.ID,
		ProfessorID: professorID,
		FileType:    fileType,
		Title:       title,
		Description: description,
		Payload:     payload,
		ContentType: contentType,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildFileDTO(file))
}

func (s *Server) GetFile(w http.ResponseWriter, r *http.Request) {
	file, _, err := s.loadFile(r, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildFileDTO(file))
}

func (s *Server) DeleteFile(w http.ResponseWriter, r *http.Request) {
	file, _, err := s.loadFile(r, services.ActionDelete)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := services.DeleteStudentFile(r.Context(), s.DB, s.Media, file); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
