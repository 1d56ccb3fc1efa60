package usecase

import (
	"context"
	"strings"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	SetPassword(ctx context.Context, id int64, password string) error
	DeleteDoctor(ctx context.Context, id int64) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	sessionStore service.SessionStore
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	sessionStore service.SessionStore,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		sessionStore: sessionStore,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	doctor := &entity.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Description:    req.Description,
		Username:       normalizeUsername(req.Username),
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		doctor.Password = &hashed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "uq_doctors_username") {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	response := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionDoctorCreate, "doctor", doctor.ID, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id int64, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorToResponse(doctor)

	doctor.Name = req.Name
	doctor.Specialization = req.Specialization
	doctor.Experience = req.Experience
	doctor.Description = req.Description
	doctor.Username = normalizeUsername(req.Username)

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "uq_doctors_username") {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	response := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionDoctorUpdate, "doctor", doctor.ID, oldValue, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

// SetPassword stores a new bcrypt hash and ends every open session of the doctor.
func (u *doctorUsecase) SetPassword(ctx context.Context, id int64, password string) error {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	hashed, err := hashPassword(password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	doctor.Password = &hashed
	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor password: %+v", err)
		return err
	}

	if err := u.auditService.LogEvent(ctx, tx, actor, entity.AuditActionDoctorPasswordChanged, entity.JSON{"doctor_id": doctor.ID}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.sessionStore.DeleteAll(ctx, entity.PrincipalDoctor, doctor.ID); err != nil {
		u.log.Warnf("Failed to revoke sessions of doctor %d: %+v", doctor.ID, err)
	}

	return nil
}

// DeleteDoctor removes the doctor together with their appointments,
// testimonials and records.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id int64) error {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if _, err := u.doctorRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionDoctorDelete, "doctor", id, converter.DoctorToResponse(doctor)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.sessionStore.DeleteAll(ctx, entity.PrincipalDoctor, id); err != nil {
		u.log.Warnf("Failed to revoke sessions of doctor %d: %+v", id, err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// normalizeUsername maps blank usernames to NULL so the unique index only
// applies to real usernames.
func normalizeUsername(username *string) *string {
	if username == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*username)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
