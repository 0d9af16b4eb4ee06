package children

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
	childRepo "github.com/ovchr/BSM-SessionService/internal/infra/storage/child"
	"github.com/ovchr/BSM-SessionService/internal/service/children/models"
)

// Service сервис для работы с детскими записями родителя
type Service struct {
	childRepo ChildRepository
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса детских записей
func NewService(childRepo ChildRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		childRepo: childRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create создает новую детскую запись
func (s *Service) Create(ctx context.Context, req *models.CreateChildRequest) (*models.ChildResponse, error) {
	s.logger.Info("Create: creating child for parent=%d", req.ParentID)

	if err := validateChildInput(req.Name, req.Notes); err != nil {
		s.logger.Warn("Create: invalid input for parent=%d: %v", req.ParentID, err)
		return nil, err
	}

	child := &domain.Child{
		ParentID:    req.ParentID,
		Name:        strings.TrimSpace(req.Name),
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		PhotoURL:    req.PhotoURL,
		Notes:       req.Notes,
	}

	created, err := s.childRepo.Create(ctx, child)
	if err != nil {
		s.logger.Error("Create: repository error for parent=%d: %v", req.ParentID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.publishUpdated(created)

	s.logger.Info("Create: successfully created child id=%d for parent=%d", created.ID, req.ParentID)
	return models.FromDomainChild(created, time.Now()), nil
}

// GetByID получает детскую запись по ID
// Запись видит только её родитель
func (s *Service) GetByID(ctx context.Context, id int64, parentID int64) (*models.ChildResponse, error) {
	s.logger.Info("GetByID: fetching child id=%d for parent=%d", id, parentID)

	child, err := s.getOwnedChild(ctx, id, parentID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainChild(child, time.Now()), nil
}

// GetParentChildren получает все детские записи родителя
func (s *Service) GetParentChildren(ctx context.Context, parentID int64) (*models.ChildListResponse, error) {
	s.logger.Info("GetParentChildren: fetching children for parent=%d", parentID)

	children, err := s.childRepo.GetByParent(ctx, parentID)
	if err != nil {
		s.logger.Error("GetParentChildren: repository error for parent=%d: %v", parentID, err)
		return nil, fmt.Errorf("%w: GetParentChildren - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetParentChildren: successfully fetched %d children for parent=%d", len(children), parentID)
	return models.FromDomainChildList(children, time.Now()), nil
}

// Update обновляет детскую запись
// Запись может обновить только её родитель
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateChildRequest) (*models.ChildResponse, error) {
	s.logger.Info("Update: updating child id=%d by parent=%d", id, req.ParentID)

	if err := validateChildInput(req.Name, req.Notes); err != nil {
		s.logger.Warn("Update: invalid input for child id=%d: %v", id, err)
		return nil, err
	}

	child, err := s.getOwnedChild(ctx, id, req.ParentID, "Update")
	if err != nil {
		return nil, err
	}

	child.Name = strings.TrimSpace(req.Name)
	child.Gender = req.Gender
	child.DateOfBirth = req.DateOfBirth
	child.PhotoURL = req.PhotoURL
	child.Notes = req.Notes

	if err := s.childRepo.Update(ctx, child); err != nil {
		if errors.Is(err, childRepo.ErrChildNotFound) {
			return nil, ErrChildNotFound
		}
		s.logger.Error("Update: repository error for child id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.publishUpdated(child)

	s.logger.Info("Update: successfully updated child id=%d", id)
	return models.FromDomainChild(child, time.Now()), nil
}

// Delete удаляет детскую запись
// Запись может удалить только её родитель
func (s *Service) Delete(ctx context.Context, id int64, parentID int64) error {
	s.logger.Info("Delete: deleting child id=%d by parent=%d", id, parentID)

	child, err := s.getOwnedChild(ctx, id, parentID, "Delete")
	if err != nil {
		return err
	}

	if err := s.childRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, childRepo.ErrChildNotFound) {
			return ErrChildNotFound
		}
		s.logger.Error("Delete: repository error for child id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publishUpdated(child)

	s.logger.Info("Delete: successfully deleted child id=%d", id)
	return nil
}

// getOwnedChild получает запись и проверяет принадлежность родителю
func (s *Service) getOwnedChild(ctx context.Context, id, parentID int64, op string) (*domain.Child, error) {
	child, err := s.childRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, childRepo.ErrChildNotFound) {
			s.logger.Warn("%s: child id=%d not found", op, id)
			return nil, ErrChildNotFound
		}
		s.logger.Error("%s: repository error for child id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if child.ParentID != parentID {
		s.logger.Warn("%s: access denied for parent=%d to child id=%d", op, parentID, id)
		return nil, ErrAccessDenied
	}

	return child, nil
}

// publishUpdated публикует событие о мутации детских записей родителя
func (s *Service) publishUpdated(child *domain.Child) {
	s.publisher.Publish(events.Event{
		Type:       events.EventChildrenUpdated,
		ParentID:   child.ParentID,
		ChildID:    child.ID,
		OccurredAt: time.Now(),
	})
}

// validateChildInput проверяет общие поля создания и обновления записи
func validateChildInput(name string, notes *string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(trimmed)) > domain.MaxChildNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if notes != nil && len([]rune(*notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}
	return nil
}
