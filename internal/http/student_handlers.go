package httpapi

import (
	"net/http"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) caller(r *http.Request) (services.Caller, error) {
	return services.ResolveCaller(s.DB, CurrentIdentity(r))
}

// loadStudent resolves the target student and runs the access check. Absence
// reports before authorization, so a denied caller cannot distinguish a
// student outside their scope from one that does not exist by probing ids.
func (s *Server) loadStudent(r *http.Request, kind services.ResourceKind, action services.Action) (models.Student, services.Caller, error) {
	caller, err := s.caller(r)
	if err != nil {
		return models.Student{}, services.Caller{}, err
	}
	st, err := services.GetStudent(s.DB, chi.URLParam(r, "studentId"))
	if err != nil {
		return models.Student{}, services.Caller{}, err
	}
	if err := services.Authorize(caller, action, services.StudentResource(kind, st)); err != nil {
		return models.Student{}, services.Caller{}, err
	}
	return st, caller, nil
}

type StudentFieldsRequest struct {
	Phone        *string  `json:"phone"`
	HeightCm     *float64 `json:"heightCm" validate:"omitempty,gt=0"`
	WeightKg     *float64 `json:"weightKg" validate:"omitempty,gt=0"`
	Age          *int     `json:"age" validate:"omitempty,gt=0"`
	WaistCm      *float64 `json:"waistCm" validate:"omitempty,gt=0"`
	HipCm        *float64 `json:"hipCm" validate:"omitempty,gt=0"`
	NeckCm       *float64 `json:"neckCm" validate:"omitempty,gt=0"`
	DailyFoods   []string `json:"dailyFoods"`
	AvoidedFoods []string `json:"avoidedFoods"`
	Allergies    []string `json:"foodAllergies"`
	JointPain    *string  `json:"jointPain"`
	Supplements  []string `json:"supplements"`
	TrainingDays *int     `json:"trainingDaysPerWeek" validate:"omitempty,gte=0"`
	MealSchedule *string  `json:"mealSchedule"`
}

func (req StudentFieldsRequest) toInput() services.StudentInput {
	return services.StudentInput{
		Phone:        req.Phone,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		Age:          req.Age,
		WaistCm:      req.WaistCm,
		HipCm:        req.HipCm,
		NeckCm:       req.NeckCm,
		DailyFoods:   req.DailyFoods,
		AvoidedFoods: req.AvoidedFoods,
		Allergies:    req.Allergies,
		JointPain:    req.JointPain,
		Supplements:  req.Supplements,
		TrainingDays: req.TrainingDays,
		MealSchedule: req.MealSchedule,
	}
}

type CreateStudentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	ProfessorID string `json:"professorId"`
	StudentFieldsRequest
}

func (s *Server) ListStudents(w http.ResponseWriter, r *http.Request) {
	caller, err := s.caller(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	students, err := services.ListStudents(s.DB, caller)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildStudentDTOs(students))
}

func (s *Server) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	caller, err := s.caller(r)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	st, err := services.CreateStudent(s.DB, s.Tokens, caller, services.CreateStudentInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		ProfessorID:  req.ProfessorID,
		StudentInput: req.StudentFieldsRequest.toInput(),
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildStudentDTO(st))
}

func (s *Server) GetStudent(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadStudent(r, services.KindStudent, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildStudentDTO(st))
}

func (s *Server) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentFieldsRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, _, err := s.loadStudent(r, services.KindStudent, services.ActionUpdate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	updated, err := services.UpdateStudent(s.DB, st.ID, req.toInput())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildStudentDTO(updated))
}

func (s *Server) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadStudent(r, services.KindStudent, services.ActionDelete)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := services.DeleteStudent(s.DB, st); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
