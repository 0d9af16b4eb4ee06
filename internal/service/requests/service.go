package requests

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
	requestRepo "github.com/ovchr/BSM-SessionService/internal/infra/storage/sessionrequest"
	userClient "github.com/ovchr/BSM-SessionService/internal/integrations/userservice"
	"github.com/ovchr/BSM-SessionService/internal/service/requests/models"
)

// Service сервис для работы с запросами на сессии
type Service struct {
	requestRepo RequestRepository
	userClient  UserServiceClient
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса запросов
func NewService(
	requestRepo RequestRepository,
	userClient UserServiceClient,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		userClient:  userClient,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetByID получает запрос на сессию по ID
// Запрос видят его родитель, приглашённый или назначенный ситтер,
// а также любой ситтер, пока широковещательный запрос ждёт ответа
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SessionRequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for user=%d", id, userID)

	request, err := s.getRequest(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !canView(request, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched request id=%d", id)
	return models.FromDomainRequest(request), nil
}

// GetParentRequests получает историю запросов родителя
// Опционально фильтрует по статусу и включает неактивные запросы
func (s *Service) GetParentRequests(ctx context.Context, req *models.GetParentRequestsRequest) (*models.SessionRequestListResponse, error) {
	s.logger.Info("GetParentRequests: fetching requests for parent=%d, status=%v, includeInactive=%t",
		req.ParentID, req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetParentRequests: invalid status=%s for parent=%d", *req.Status, req.ParentID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	requests, err := s.requestRepo.GetByParentWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetParentRequests: repository error for parent=%d: %v", req.ParentID, err)
		return nil, fmt.Errorf("%w: GetParentRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetParentRequests: successfully fetched %d requests for parent=%d", len(requests), req.ParentID)
	return models.FromDomainRequestList(requests), nil
}

// GetSitterInbox получает входящие запросы ситтера.
// Хранилище отдаёт ожидающие ответа запросы (адресные приглашения и
// широковещательные), после чего широковещательные дополнительно
// фильтруются по типу поиска относительно профиля ситтера:
// nearby - по расстоянию, city - по городу, nationwide - без фильтра
func (s *Service) GetSitterInbox(ctx context.Context, req *models.GetSitterInboxRequest) (*models.SessionRequestListResponse, error) {
	s.logger.Info("GetSitterInbox: fetching inbox for sitter=%d", req.SitterID)

	sitter, err := s.userClient.GetSitter(ctx, req.SitterID)
	if err != nil {
		if errors.Is(err, userClient.ErrSitterNotFound) {
			s.logger.Warn("GetSitterInbox: sitter id=%d not found", req.SitterID)
			return nil, ErrSitterNotFound
		}
		s.logger.Error("GetSitterInbox: failed to get sitter id=%d: %v", req.SitterID, err)
		return nil, fmt.Errorf("%w: GetSitterInbox - failed to get sitter: %v", ErrInternal, err)
	}

	candidates, err := s.requestRepo.GetInbox(ctx, domain.SitterInboxFilter{SitterID: req.SitterID})
	if err != nil {
		s.logger.Error("GetSitterInbox: repository error for sitter=%d: %v", req.SitterID, err)
		return nil, fmt.Errorf("%w: GetSitterInbox - repository error: %v", ErrInternal, err)
	}

	visible := make([]*domain.SessionRequest, 0, len(candidates))
	for _, request := range candidates {
		if matchesSitter(request, sitter) {
			visible = append(visible, request)
		}
	}

	s.logger.Info("GetSitterInbox: %d of %d requests visible for sitter=%d", len(visible), len(candidates), req.SitterID)
	return models.FromDomainRequestList(visible), nil
}

// Respond принимает ответ ситтера на запрос.
// Принятие привязывает ситтера к запросу; на приглашение может ответить
// только приглашённый ситтер. Отклонённое приглашение закрывается,
// отказ от широковещательного запроса не меняет его статус
func (s *Service) Respond(ctx context.Context, requestID int64, req *models.RespondRequest) error {
	s.logger.Info("Respond: sitter=%d responding to request id=%d, accept=%t", req.SitterID, requestID, req.Accept)

	request, err := s.getRequest(ctx, requestID, "Respond")
	if err != nil {
		return err
	}

	if !request.CanBeAnswered() {
		s.logger.Warn("Respond: request id=%d cannot be answered, status=%s", requestID, request.Status)
		return ErrCannotRespond
	}

	if !request.IsBroadcast() && (request.SitterID == nil || *request.SitterID != req.SitterID) {
		s.logger.Warn("Respond: sitter=%d is not invited to request id=%d", req.SitterID, requestID)
		return ErrAccessDenied
	}

	var status domain.RequestStatus
	switch {
	case req.Accept:
		status = domain.StatusAccepted
	case request.IsBroadcast():
		// Отказ одного ситтера не закрывает запрос для остальных
		s.logger.Info("Respond: sitter=%d passed on broadcast request id=%d", req.SitterID, requestID)
		return nil
	default:
		status = domain.StatusDeclined
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, status, &req.SitterID); err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("Respond: repository error for request id=%d: %v", requestID, err)
		return fmt.Errorf("%w: Respond - repository error: %v", ErrInternal, err)
	}

	s.publishStatusChanged(request, status, &req.SitterID)

	s.logger.Info("Respond: request id=%d is now %s by sitter=%d", requestID, status, req.SitterID)
	return nil
}

// Cancel отменяет запрос на сессию
// Родитель может отменить свой запрос (cancelled_by_parent),
// назначенный ситтер - принятый запрос (cancelled_by_sitter)
func (s *Service) Cancel(ctx context.Context, requestID int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling request id=%d by user=%d", requestID, req.UserID)

	request, err := s.getRequest(ctx, requestID, "Cancel")
	if err != nil {
		return err
	}

	if !request.CanBeCancelled() {
		s.logger.Warn("Cancel: request id=%d cannot be cancelled, status=%s", requestID, request.Status)
		return ErrCannotCancel
	}

	var status domain.RequestStatus
	switch {
	case request.ParentID == req.UserID:
		status = domain.StatusCancelledByParent
	case request.SitterID != nil && *request.SitterID == req.UserID && request.Status == domain.StatusAccepted:
		status = domain.StatusCancelledBySitter
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel request id=%d", req.UserID, requestID)
		return ErrAccessDenied
	}

	if err := s.requestRepo.Cancel(ctx, requestID, status, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, requestRepo.ErrRequestNotFound):
			return ErrRequestNotFound
		case errors.Is(err, requestRepo.ErrInvalidStatus):
			return ErrCannotCancel
		default:
			s.logger.Error("Cancel: repository error for request id=%d: %v", requestID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.publishStatusChanged(request, status, request.SitterID)

	s.logger.Info("Cancel: successfully cancelled request id=%d with status=%s", requestID, status)
	return nil
}

// getRequest получает запрос из хранилища, схлопывая not-found в сервисную ошибку
func (s *Service) getRequest(ctx context.Context, id int64, op string) (*domain.SessionRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return request, nil
}

// publishStatusChanged публикует событие смены статуса запроса
func (s *Service) publishStatusChanged(request *domain.SessionRequest, status domain.RequestStatus, sitterID *int64) {
	s.publisher.Publish(events.Event{
		Type:       events.EventRequestStatusChanged,
		RequestID:  request.ID,
		ParentID:   request.ParentID,
		SitterID:   sitterID,
		ChildID:    request.ChildID,
		Status:     string(status),
		OccurredAt: time.Now(),
	})
}

// canView проверяет право пользователя видеть запрос
func canView(request *domain.SessionRequest, userID int64) bool {
	if request.ParentID == userID {
		return true
	}
	if request.SitterID != nil && *request.SitterID == userID {
		return true
	}
	// Широковещательный запрос открыт любому ситтеру, пока ждёт ответа
	return request.IsBroadcast() && request.CanBeAnswered()
}

// matchesSitter проверяет видимость запроса для профиля ситтера
// с учётом типа поиска
func matchesSitter(request *domain.SessionRequest, sitter *userClient.Sitter) bool {
	if !request.IsBroadcast() {
		return request.SitterID != nil && *request.SitterID == sitter.ID
	}

	switch request.SearchScope {
	case domain.ScopeNationwide:
		return true
	case domain.ScopeCity:
		return request.Location.City != nil && sitter.City != nil &&
			strings.EqualFold(*request.Location.City, *sitter.City)
	case domain.ScopeNearby:
		if !request.Location.HasCoordinates() || sitter.Latitude == nil || sitter.Longitude == nil {
			return false
		}
		if request.MaxDistanceKm == nil {
			return false
		}
		distance := haversineKm(
			*request.Location.Latitude, *request.Location.Longitude,
			*sitter.Latitude, *sitter.Longitude,
		)
		return distance <= *request.MaxDistanceKm
	default:
		return false
	}
}

const earthRadiusKm = 6371.0

// haversineKm расстояние между двумя точками на сфере в километрах
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
