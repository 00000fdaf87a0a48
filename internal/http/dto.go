package httpapi

import (
	"encoding/json"
	"time"

	"gymcore-backend-go/internal/models"
)

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func buildUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

type StudentDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ProfessorID  string    `json:"professorId"`
	Phone        *string   `json:"phone"`
	HeightCm     *float64  `json:"heightCm"`
	WeightKg     *float64  `json:"weightKg"`
	Age          *int      `json:"age"`
	WaistCm      *float64  `json:"waistCm"`
	HipCm        *float64  `json:"hipCm"`
	NeckCm       *float64  `json:"neckCm"`
	DailyFoods   []string  `json:"dailyFoods"`
	AvoidedFoods []string  `json:"avoidedFoods"`
	Allergies    []string  `json:"foodAllergies"`
	JointPain    *string   `json:"jointPain"`
	Supplements  []string  `json:"supplements"`
	TrainingDays *int      `json:"trainingDaysPerWeek"`
	MealSchedule *string   `json:"mealSchedule"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func decodeList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	items := []string{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func buildStudentDTO(st models.Student) StudentDTO {
	return StudentDTO{
		ID:           st.ID,
		UserID:       st.UserID,
		ProfessorID:  st.ProfessorID,
		Phone:        st.Phone,
		HeightCm:     st.HeightCm,
		WeightKg:     st.WeightKg,
		Age:          st.Age,
		WaistCm:      st.WaistCm,
		HipCm:        st.HipCm,
		NeckCm:       st.NeckCm,
		DailyFoods:   decodeList(st.DailyFoods),
		AvoidedFoods: decodeList(st.AvoidedFoods),
		Allergies:    decodeList(st.Allergies),
		JointPain:    st.JointPain,
		Supplements:  decodeList(st.Supplements),
		TrainingDays: st.TrainingDays,
		MealSchedule: st.MealSchedule,
		CreatedAt:    st.CreatedAt,
		UpdatedAt:    st.UpdatedAt,
	}
}

func buildStudentDTOs(students []models.Student) []StudentDTO {
	items := make([]StudentDTO, 0, len(students))
	for _, st := range students {
		items = append(items, buildStudentDTO(st))
	}
	return items
}

type ProfessorDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Phone     *string   `json:"phone"`
	Specialty *string   `json:"specialty"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func buildProfessorDTO(prof models.Professor) ProfessorDTO {
	return ProfessorDTO{
		ID:        prof.ID,
		UserID:    prof.UserID,
		Phone:     prof.Phone,
		Specialty: prof.Specialty,
		IsDefault: prof.IsDefault,
		CreatedAt: prof.CreatedAt,
		UpdatedAt: prof.UpdatedAt,
	}
}

type HistoryDTO struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	WeightKg     *float64  `json:"weightKg"`
	HeightCm     *float64  `json:"heightCm"`
	WaistCm      *float64  `json:"waistCm"`
	HipCm        *float64  `json:"hipCm"`
	NeckCm       *float64  `json:"neckCm"`
	LeftArmCm    *float64  `json:"leftArmCm"`
	RightArmCm   *float64  `json:"rightArmCm"`
	LeftLegCm    *float64  `json:"leftLegCm"`
	RightLegCm   *float64  `json:"rightLegCm"`
	BodyFatPct   *float64  `json:"bodyFatPct"`
	MuscleMassKg *float64  `json:"muscleMassKg"`
	Notes        *string   `json:"notes"`
	RecordedBy   string    `json:"recordedBy"`
	RecordedAt   time.Time `json:"recordedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

func buildHistoryDTO(rec models.HistoryRecord) HistoryDTO {
	return HistoryDTO{
		ID:           rec.ID,
		StudentID:    rec.StudentID,
		WeightKg:     rec.WeightKg,
		HeightCm:     rec.HeightCm,
		WaistCm:      rec.WaistCm,
		HipCm:        rec.HipCm,
		NeckCm:       rec.NeckCm,
		LeftArmCm:    rec.LeftArmCm,
		RightArmCm:   rec.RightArmCm,
		LeftLegCm:    rec.LeftLegCm,
		RightLegCm:   rec.RightLegCm,
		BodyFatPct:   rec.BodyFatPct,
		MuscleMassKg: rec.MuscleMassKg,
		Notes:        rec.Notes,
		RecordedBy:   rec.RecordedBy,
		RecordedAt:   rec.RecordedAt,
		CreatedAt:    rec.CreatedAt,
	}
}

func buildHistoryDTOs(records []models.HistoryRecord) []HistoryDTO {
	items := make([]HistoryDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, buildHistoryDTO(rec))
	}
	return items
}

type InviteDTO struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Role      string     `json:"role"`
	UsedBy    *string    `json:"usedBy"`
	UsedAt    *time.Time `json:"usedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

func buildInviteDTO(invite models.InviteCode) InviteDTO {
	return InviteDTO{
		ID:        invite.ID,
		Code:      invite.Code,
		Role:      string(invite.Role),
		UsedBy:    invite.UsedBy,
		UsedAt:    invite.UsedAt,
		ExpiresAt: invite.ExpiresAt,
		CreatedBy: invite.CreatedBy,
		CreatedAt: invite.CreatedAt,
	}
}

type FileDTO struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	ProfessorID string    `json:"professorId"`
	FileType    string    `json:"fileType"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func buildFileDTO(file models.StudentFile) FileDTO {
	return FileDTO{
		ID:          file.ID,
		StudentID:   file.StudentID,
		ProfessorID: file.ProfessorID,
		FileType:    string(file.FileType),
		Title:       file.Title,
		Description: file.Description,
		URL:         file.URL,
		CreatedAt:   file.CreatedAt,
		UpdatedAt:   file.UpdatedAt,
	}
}

type PhotoDTO struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Caption   *string   `json:"caption"`
	TakenAt   time.Time `json:"takenAt"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

func buildPhotoDTO(photo models.ShapePhoto) PhotoDTO {
	return PhotoDTO{
		ID:        photo.ID,
		StudentID: photo.StudentID,
		Caption:   photo.Caption,
		TakenAt:   photo.TakenAt,
		URL:       photo.URL,
		CreatedAt: photo.CreatedAt,
	}
}
