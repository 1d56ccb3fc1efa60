package usecase

import (
	"context"
	"errors"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidPrice = errors.New("price must be a non-negative number")
	ErrServiceInUse = errors.New("service is referenced by medical records")
)

// ServiceUsecase manages the clinic's catalog of medical services.
type ServiceUsecase interface {
	GetAllServices(ctx context.Context) (*dto.ServiceListResponse, error)
	GetService(ctx context.Context, id int64) (*dto.ServiceResponse, error)
	CreateService(ctx context.Context, req *dto.ServiceRequest) (*dto.ServiceResponse, error)
	UpdateService(ctx context.Context, id int64, req *dto.ServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, id int64) error
}

type serviceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceUsecase) GetAllServices(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) GetService(ctx context.Context, id int64) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service by ID: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) CreateService(ctx context.Context, req *dto.ServiceRequest) (*dto.ServiceResponse, error) {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	svc := &entity.Service{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		Price:       price,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.serviceRepo.Create(tx, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	response := converter.ServiceToResponse(svc)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionServiceCreate, "service", svc.ID, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *serviceUsecase) UpdateService(ctx context.Context, id int64, req *dto.ServiceRequest) (*dto.ServiceResponse, error) {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service by ID: %+v", err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	oldValue := converter.ServiceToResponse(svc)

	svc.Title = req.Title
	svc.Description = req.Description
	svc.Order = req.Order
	svc.Price = price

	if err := u.serviceRepo.Update(tx, svc); err != nil {
		u.log.Warnf("Failed to update service: %+v", err)
		return nil, err
	}

	response := converter.ServiceToResponse(svc)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionServiceUpdate, "service", svc.ID, oldValue, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

// DeleteService refuses to remove a service that medical records point to.
func (u *serviceUsecase) DeleteService(ctx context.Context, id int64) error {
	actor, _ := middleware.GetPrincipalFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service by ID: %+v", err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	if _, err := u.serviceRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "service_id") {
			return ErrServiceInUse
		}
		u.log.Warnf("Failed to delete service: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionServiceDelete, "service", id, converter.ServiceToResponse(svc)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func parsePrice(raw *string) (decimal.NullDecimal, error) {
	if raw == nil || *raw == "" {
		return decimal.NullDecimal{}, nil
	}

	price, err := decimal.NewFromString(*raw)
	if err != nil || price.IsNegative() {
		return decimal.NullDecimal{}, ErrInvalidPrice
	}

	return decimal.NewNullDecimal(price.Round(2)), nil
}
