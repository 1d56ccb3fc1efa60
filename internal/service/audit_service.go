package service

import (
	"context"
	"strconv"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogEvent(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, metadata entity.JSON) error
	LogCreate(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogEvent records an action that is not tied to a single entity, such as a login.
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, metadata entity.JSON) error {
	return s.write(tx, actor, action, metadata)
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, newValue interface{}) error {
	return s.write(tx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	return s.write(tx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actor *entity.Principal, action string, entityName string, entityID int64, oldValue interface{}) error {
	return s.write(tx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) write(tx *gorm.DB, actor *entity.Principal, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		Action:   action,
		Metadata: metadata,
	}
	if actor != nil {
		id := actor.ID
		auditLog.ActorKind = actor.Kind
		auditLog.ActorID = &id
		auditLog.ActorName = actor.Name
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
