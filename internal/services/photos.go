package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"gymcore-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const photoColumns = `
id, student_id, caption, taken_at, url, provider_ref, created_at`

func GetShapePhoto(db *sqlx.DB, id string) (models.ShapePhoto, error) {
	var photo models.ShapePhoto
	err := db.Get(&photo, `SELECT `+photoColumns+` FROM shape_photos WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShapePhoto{}, ErrNotFound("Photo not found")
	}
	return photo, err
}

func ListShapePhotos(db *sqlx.DB, studentID string) ([]models.ShapePhoto, error) {
	photos := []models.ShapePhoto{}
	err := db.Select(&photos, `
SELECT `+photoColumns+` FROM shape_photos WHERE student_id = $1 ORDER BY taken_at DESC, created_at DESC
`, studentID)
	return photos, err
}

type UploadPhotoInput struct {
	StudentID   string
	Caption     *string
	TakenAt     *time.Time
	Payload     []byte
	ContentType string
	Extension   string
}

func UploadShapePhoto(ctx context.Context, db *sqlx.DB, media *MediaStore, input UploadPhotoInput) (models.ShapePhoto, error) {
	id := uuid.NewString()
	pathHint := fmt.Sprintf("students/%s/photos/%s%s", input.StudentID, id, input.Extension)
	url, ref, err := media.Upload(ctx, input.Payload, pathHint, input.ContentType)
	if err != nil {
		return models.ShapePhoto{}, err
	}
	takenAt := time.Now().UTC()
	if input.TakenAt != nil {
		takenAt = input.TakenAt.UTC()
	}
	_, err = db.Exec(`
INSERT INTO shape_photos (id, student_id, caption, taken_at, url, provider_ref, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, id, input.StudentID, input.Caption, takenAt, url, ref, time.Now().UTC())
	if err != nil {
		if derr := media.Delete(ctx, ref); derr != nil {
			log.Printf("orphaned media object %s after failed insert: %v", ref, derr)
		}
		return models.ShapePhoto{}, err
	}
	return GetShapePhoto(db, id)
}

func DeleteShapePhoto(ctx context.Context, db *sqlx.DB, media *MediaStore, photo models.ShapePhoto) error {
	if _, err := db.Exec(`DELETE FROM shape_photos WHERE id = $1`, photo.ID); err != nil {
		return err
	}
	if err := media.Delete(ctx, photo.ProviderRef); err != nil {
		log.Printf("remote media delete failed for %s: %v", photo.ProviderRef, err)
	}
	return nil
}
