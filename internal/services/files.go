package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const fileColumns = `
id, student_id, professor_id, file_type, title, description, url, provider_ref,
created_at, updated_at`

func GetStudentFile(db *sqlx.DB, id string) (models.StudentFile, error) {
	var file models.StudentFile
	err := db.Get(&file, `SELECT `+fileColumns+` FROM student_files WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StudentFile{}, ErrNotFound("File not found")
	}
	return file, err
}

func ListStudentFiles(db *sqlx.DB, studentID string) ([]models.StudentFile, error) {
	files := []models.StudentFile{}
	err := db.Select(&files, `
SELECT `+fileColumns+` FROM student_files WHERE student_id = $1 ORDER BY created_at DESC
`, studentID)
	return files, err
}

type UploadFileInput struct {
	StudentID   string
	ProfessorID string
	FileType    models.FileType
	Title       string
	Description *string
	Payload     []byte
	ContentType string
}

// UploadStudentFile pushes the PDF to the media store first and persists the
// record after; a failed insert rolls the remote object back so neither side
// is left orphaned.
func UploadStudentFile(ctx context.Context, db *sqlx.DB, media *MediaStore, input UploadFileInput) (models.StudentFile, error) {
	folder := "training"
	if input.FileType == models.FileDiet {
		folder = "diet"
	}
	id := uuid.NewString()
	pathHint := fmt.Sprintf("students/%s/%s/%s.pdf", input.StudentID, folder, id)
	url, ref, err := media.Upload(ctx, input.Payload, pathHint, input.ContentType)
	if err != nil {
		return models.StudentFile{}, err
	}
	_, err = db.Exec(`
INSERT INTO student_files (id, student_id, professor_id, file_type, title, description, url, provider_ref, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
`, id, input.StudentID, input.ProfessorID, input.FileType, strings.TrimSpace(input.Title),
		input.Description, url, ref, time.Now().UTC())
	if err != nil {
		if derr := media.Delete(ctx, ref); derr != nil {
			log.Printf("orphaned media object %s after failed insert: %v", ref, derr)
		}
		return models.StudentFile{}, err
	}
	return GetStudentFile(db, id)
}

// DeleteStudentFile removes the row, then best-effort deletes the remote
// object. A remote failure is logged and reported as degraded, never blocks
// the record deletion.
func DeleteStudentFile(ctx context.Context, db *sqlx.DB, media *MediaStore, file models.StudentFile) error {
	if _, err := db.Exec(`DELETE FROM student_files WHERE id = $1`, file.ID); err != nil {
		return err
	}
	if err := media.Delete(ctx, file.ProviderRef); err != nil {
		log.Printf("remote media delete failed for %s: %v", file.ProviderRef, err)
	}
	return nil
}
