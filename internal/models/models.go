package models

import (
	"encoding/json"
	"time"
)

// Role is the closed set of account roles. Every authorization decision is an
// exhaustive switch over this type.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleProfessor Role = "PROFESSOR"
	RoleStudent   Role = "STUDENT"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleProfessor, RoleStudent:
		return Role(raw), true
	}
	return "", false
}

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Professor struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Phone     *string   `db:"phone"`
	Specialty *string   `db:"specialty"`
	IsDefault bool      `db:"is_default"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Student carries the latest body-metrics snapshot alongside intake data. The
// snapshot columns shared with student_history mirror the most recent history
// record; the mirror is refreshed in the same transaction that inserts one.
type Student struct {
	ID           string          `db:"id"`
	UserID       string          `db:"user_id"`
	ProfessorID  string          `db:"professor_id"`
	Phone        *string         `db:"phone"`
	HeightCm     *float64        `db:"height_cm"`
	WeightKg     *float64        `db:"weight_kg"`
	Age          *int            `db:"age"`
	WaistCm      *float64        `db:"waist_cm"`
	HipCm        *float64        `db:"hip_cm"`
	NeckCm       *float64        `db:"neck_cm"`
	DailyFoods   json.RawMessage `db:"daily_foods"`
	AvoidedFoods json.RawMessage `db:"avoided_foods"`
	Allergies    json.RawMessage `db:"food_allergies"`
	JointPain    *string         `db:"joint_pain"`
	Supplements  json.RawMessage `db:"supplements"`
	TrainingDays *int            `db:"training_days_per_week"`
	MealSchedule *string         `db:"meal_schedule"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

type HistoryRecord struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	WeightKg     *float64  `db:"weight_kg"`
	HeightCm     *float64  `db:"height_cm"`
	WaistCm      *float64  `db:"waist_cm"`
	HipCm        *float64  `db:"hip_cm"`
	NeckCm       *float64  `db:"neck_cm"`
	LeftArmCm    *float64  `db:"left_arm_cm"`
	RightArmCm   *float64  `db:"right_arm_cm"`
	LeftLegCm    *float64  `db:"left_leg_cm"`
	RightLegCm   *float64  `db:"right_leg_cm"`
	BodyFatPct   *float64  `db:"body_fat_pct"`
	MuscleMassKg *float64  `db:"muscle_mass_kg"`
	Notes        *string   `db:"notes"`
	RecordedBy   string    `db:"recorded_by"`
	RecordedAt   time.Time `db:"recorded_at"`
	CreatedAt    time.Time `db:"created_at"`
}

type InviteCode struct {
	ID        string     `db:"id"`
	Code      string     `db:"code"`
	Role      Role       `db:"role"`
	UsedBy    *string    `db:"used_by"`
	UsedAt    *time.Time `db:"used_at"`
	ExpiresAt *time.Time `db:"expires_at"`
	CreatedBy string     `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
}

type FileType string

const (
	FileTraining FileType = "TRAINING"
	FileDiet     FileType = "DIET"
)

func ParseFileType(raw string) (FileType, bool) {
	switch FileType(raw) {
	case FileTraining, FileDiet:
		return FileType(raw), true
	}
	return "", false
}

type StudentFile struct {
	ID          string    `db:"id"`
	StudentID   string    `db:"student_id"`
	ProfessorID string    `db:"professor_id"`
	FileType    FileType  `db:"file_type"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	URL         string    `db:"url"`
	ProviderRef string    `db:"provider_ref"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ShapePhoto struct {
	ID          string    `db:"id"`
	StudentID   string    `db:"student_id"`
	Caption     *string   `db:"caption"`
	TakenAt     time.Time `db:"taken_at"`
	URL         string    `db:"url"`
	ProviderRef string    `db:"provider_ref"`
	CreatedAt   time.Time `db:"created_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
