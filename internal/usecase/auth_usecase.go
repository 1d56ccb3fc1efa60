package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStaffOnly          = errors.New("invalid credentials or insufficient permissions")
	ErrUsernameTaken      = errors.New("username already exists")
)

var comparePassword = bcrypt.CompareHashAndPassword

// dummyPasswordHash is compared against when no usable account exists, so an
// unknown username costs the same bcrypt round as a wrong password.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("clinic-portal-no-such-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

type AuthUsecase interface {
	LoginPage(ctx context.Context) *dto.LoginPageResponse
	StaffLogin(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	DoctorLogin(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context) error
	CreateStaff(ctx context.Context, username, password, fullName string, superuser bool) (*entity.User, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	sessionStore service.SessionStore
	auditService service.AuditService
	jwtService   *jwt.JWTService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	sessionStore service.SessionStore,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		sessionStore: sessionStore,
		auditService: auditService,
		jwtService:   jwtService,
	}
}

// LoginPage describes the login forms and who, if anyone, is logged in.
func (u *authUsecase) LoginPage(ctx context.Context) *dto.LoginPageResponse {
	principal, _ := middleware.GetPrincipalFromContext(ctx)
	return &dto.LoginPageResponse{
		FormTypes: []string{string(entity.PrincipalStaff), string(entity.PrincipalDoctor)},
		Principal: converter.PrincipalToResponse(principal),
	}
}

// StaffLogin authenticates a back-office account. Accounts without the staff
// flag are refused with the same message as a wrong password.
func (u *authUsecase) StaffLogin(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	var hash *string
	if user != nil {
		hash = &user.Password
	}

	if !checkPassword(hash, req.Password) || !user.CanLogin() {
		return nil, ErrStaffOnly
	}

	principal := entity.Principal{Kind: entity.PrincipalStaff, ID: user.ID, Name: user.DisplayName()}
	return u.openSession(ctx, principal, entity.AuditActionStaffLogin)
}

// DoctorLogin checks the credentials of the first doctor with the username.
// Unknown usernames and wrong passwords produce the same error.
func (u *authUsecase) DoctorLogin(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	doctor, err := u.doctorRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find doctor by username: %+v", err)
		return nil, err
	}
	var hash *string
	if doctor != nil && doctor.HasCredentials() {
		hash = doctor.Password
	}

	if !checkPassword(hash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	principal := entity.Principal{Kind: entity.PrincipalDoctor, ID: doctor.ID, Name: doctor.Name}
	return u.openSession(ctx, principal, entity.AuditActionDoctorLogin)
}

// checkPassword runs exactly one bcrypt comparison whether or not an account
// hash is present.
func checkPassword(hash *string, password string) bool {
	if hash == nil || *hash == "" {
		_ = comparePassword(dummyPasswordHash(), []byte(password))
		return false
	}
	return comparePassword([]byte(*hash), []byte(password)) == nil
}

func (u *authUsecase) openSession(ctx context.Context, principal entity.Principal, action string) (*dto.SessionResponse, error) {
	token, sessionID, err := u.jwtService.GenerateSessionToken(string(principal.Kind), principal.ID)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	if err := u.sessionStore.Create(ctx, sessionID, principal); err != nil {
		return nil, err
	}

	// A lost audit entry must not block the login.
	_ = u.auditService.LogEvent(ctx, u.db.WithContext(ctx), &principal, action, nil)

	u.log.Infof("Session opened: %s %d", principal.Kind, principal.ID)

	return &dto.SessionResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetAccessExpiry().Seconds()),
		Principal: *converter.PrincipalToResponse(&principal),
	}, nil
}

// Logout ends the current session. Logging out without a session is a no-op.
func (u *authUsecase) Logout(ctx context.Context) error {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil
	}
	sessionID, _ := middleware.GetSessionIDFromContext(ctx)

	if err := u.sessionStore.Delete(ctx, principal.Kind, principal.ID, sessionID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	_ = u.auditService.LogEvent(ctx, u.db.WithContext(ctx), principal, entity.AuditActionLogout, nil)

	return nil
}

// CreateStaff adds a back-office account.
func (u *authUsecase) CreateStaff(ctx context.Context, username, password, fullName string, superuser bool) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		Username:    username,
		Password:    string(hashedPassword),
		FullName:    fullName,
		IsStaff:     true,
		IsSuperuser: superuser,
		IsActive:    &active,
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "uq_users_username") {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.log.Infof("Staff account created: id=%d, username=%s", user.ID, user.Username)

	return user, nil
}
