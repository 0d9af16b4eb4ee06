package create_session_request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
	"github.com/ovchr/BSM-SessionService/internal/infra/idempotency"
	geoClient "github.com/ovchr/BSM-SessionService/internal/integrations/geoservice"
	userClient "github.com/ovchr/BSM-SessionService/internal/integrations/userservice"
)

// UseCase use case для создания запроса на сессию
type UseCase struct {
	requestRepo  RequestRepository
	childRepo    ChildRepository
	userClient   UserServiceClient
	geoClient    GeoServiceClient
	txManager    TransactionManager
	guard        SubmissionGuard
	idempotency  IdempotencyStore // nil, если redis выключен
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	childRepo ChildRepository,
	userClient UserServiceClient,
	geoClient GeoServiceClient,
	txManager TransactionManager,
	guard SubmissionGuard,
	idempotencyStore IdempotencyStore,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		childRepo:    childRepo,
		userClient:   userClient,
		geoClient:    geoClient,
		txManager:    txManager,
		guard:        guard,
		idempotency:  idempotencyStore,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания запроса на сессию.
// Защёлка захватывается до первой блокирующей операции, поэтому повторный
// вызов с тем же ключом отклоняется, пока первый ещё выполняется.
// Вставка идёт в сериализуемой транзакции с проверкой на дубликат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSessionRequest: parent=%d, scope=%s, mode=%s, children=%d",
		req.ParentID, req.Scope, req.Mode, len(req.ChildIDs))

	// 1. Нормализуем выбор детей: повторный выбор одного ребёнка схлопывается
	req.ChildIDs = dedupeChildIDs(req.ChildIDs)

	// 2. Захватываем защёлку от повторной отправки до любого ожидания
	key := guardKey(req)
	token, acquired := uc.guard.Acquire(key)
	if !acquired {
		uc.logger.Warn("CreateSessionRequest: concurrent submission suppressed, key=%s", key)
		return nil, ErrSubmissionInFlight
	}
	defer uc.guard.Release(key, token)

	// 3. Резервируем клиентский ключ идемпотентности (если он прислан).
	// Недоступный redis не блокирует отправку: остаётся внутрипроцессная защёлка
	reserved := false
	if req.IdempotencyKey != "" && uc.idempotency != nil {
		switch err := uc.idempotency.Reserve(ctx, req.IdempotencyKey); {
		case errors.Is(err, idempotency.ErrDuplicateKey):
			uc.logger.Warn("CreateSessionRequest: idempotency key already used, key=%s", req.IdempotencyKey)
			return nil, ErrDuplicateSubmission
		case errors.Is(err, idempotency.ErrUnavailable):
			uc.logger.Warn("CreateSessionRequest: idempotency store unavailable, continuing degraded: %v", err)
		case err != nil:
			uc.logger.Error("CreateSessionRequest: failed to reserve idempotency key: %v", err)
			return nil, fmt.Errorf("%w: failed to reserve idempotency key: %v", ErrInternal, err)
		default:
			reserved = true
		}
	}

	success := false
	defer func() {
		// Неуспешная отправка освобождает ключ, чтобы пользователь мог
		// повторить попытку с тем же ключом
		if reserved && !success {
			uc.idempotency.Release(context.WithoutCancel(ctx), req.IdempotencyKey)
		}
	}()

	// 4. Получаем родителя (пропускаем при пустом ID - ворота сообщат)
	var parent *userClient.Parent
	if req.ParentID > 0 {
		var err error
		parent, err = uc.userClient.GetParent(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, userClient.ErrParentNotFound) {
				uc.logger.Warn("CreateSessionRequest: parent id=%d not found", req.ParentID)
				return nil, ErrParentNotFound
			}
			uc.logger.Error("CreateSessionRequest: failed to get parent id=%d: %v", req.ParentID, err)
			return nil, fmt.Errorf("%w: failed to get parent: %v", ErrInternal, err)
		}
	}

	// 5. Для приглашения получаем ситтера, ставка берётся из его профиля
	hourlyRate := 0.0
	if req.Scope == domain.ScopeInvite && req.SitterID != nil {
		sitter, err := uc.userClient.GetSitter(ctx, *req.SitterID)
		if err != nil {
			if errors.Is(err, userClient.ErrSitterNotFound) {
				uc.logger.Warn("CreateSessionRequest: sitter id=%d not found", *req.SitterID)
				return nil, ErrSitterNotFound
			}
			uc.logger.Error("CreateSessionRequest: failed to get sitter id=%d: %v", *req.SitterID, err)
			return nil, fmt.Errorf("%w: failed to get sitter: %v", ErrInternal, err)
		}
		hourlyRate = sitter.HourlyRate
	}

	// 6. Геокодируем адрес с graceful degradation: без координат запрос
	// продолжается, кроме scope=nearby (ворота потребуют координаты)
	location := domain.Location{Address: req.Address}
	if strings.TrimSpace(req.Address) != "" {
		resolved, err := uc.geoClient.ResolveAddressWithGracefulDegradation(ctx, req.Address)
		if err != nil && !errors.Is(err, geoClient.ErrServiceDegraded) {
			uc.logger.Error("CreateSessionRequest: failed to resolve address: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve address: %v", ErrInternal, err)
		}
		location = domain.Location{
			Address:   resolved.Address,
			City:      resolved.City,
			Latitude:  resolved.Latitude,
			Longitude: resolved.Longitude,
		}
	}

	// 7. Составляем раскладку по дням и таблицу слотов
	breakdown := req.Range.Breakdown(req.Mode)
	totalHours := req.Range.TotalHours()

	var table *domain.SlotTable
	if req.Mode == domain.ModeSlotted {
		table = domain.NewSlotTable()
		table.EnsureDays(breakdown)
		for _, slot := range req.Slots {
			if slot.StartTime.IsZero() || slot.EndTime.IsZero() {
				continue // ворота сообщат об этом слоте
			}
			table.SetSlotTime(slot.Date, domain.SlotEdgeStart, slot.StartTime)
			table.SetSlotTime(slot.Date, domain.SlotEdgeEnd, slot.EndTime)
		}
		totalHours = table.TotalHours()
	}

	// 8. Ворота валидации: собираем все проблемы формы за один проход
	if problems := validateRequest(req, totalHours, table, location); len(problems) > 0 {
		uc.logger.Warn("CreateSessionRequest: validation failed: %v", problems.Messages())
		return nil, problems
	}

	// 9. Проверяем, что все выбранные дети принадлежат родителю
	if err := uc.checkChildrenOwnership(ctx, req); err != nil {
		return nil, err
	}

	// 10. Композиция: форма сворачивается ровно в один исходящий запрос
	composed, err := buildSessionRequests(req, location, hourlyRate, table)
	if err != nil {
		uc.logger.Error("CreateSessionRequest: failed to compose request: %v", err)
		return nil, err
	}
	if len(composed) != 1 {
		uc.logger.Error("CreateSessionRequest: composition produced %d requests instead of 1, aborting", len(composed))
		return nil, ErrComposeConflict
	}
	request := composed[0]

	// 11. Вставка в сериализуемой транзакции с проверкой на дубликат
	var result *domain.SessionRequest
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 11.1. Активные запросы родителя в этом окне с блокировкой (FOR UPDATE)
		existing, err := uc.requestRepo.GetActiveByParentInWindow(txCtx, req.ParentID, request.StartTime, request.EndTime)
		if err != nil {
			uc.logger.Error("CreateSessionRequest: failed to get active requests: %v", err)
			return fmt.Errorf("%w: failed to get active requests: %v", ErrInternal, err)
		}

		for _, active := range existing {
			if isSameSubmission(active, request) {
				uc.logger.Warn("CreateSessionRequest: identical active request id=%d already exists", active.ID)
				return ErrDuplicateSubmission
			}
		}

		// 11.2. Сохраняем запрос
		created, err := uc.requestRepo.Create(txCtx, request)
		if err != nil {
			uc.logger.Error("CreateSessionRequest: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	success = true
	uc.logger.Info("CreateSessionRequest: successfully created request id=%d, token=%s, parent=%d (%s)",
		result.ID, result.Token, result.ParentID, parent.DisplayName)

	// 12. Публикуем событие о созданном запросе
	uc.publisher.Publish(events.Event{
		Type:       events.EventRequestCreated,
		RequestID:  result.ID,
		ParentID:   result.ParentID,
		SitterID:   result.SitterID,
		ChildID:    result.ChildID,
		Status:     string(result.Status),
		OccurredAt: uc.timeProvider.Now(),
	})

	return newResponse(result), nil
}

// checkChildrenOwnership проверяет, что каждый выбранный ребёнок
// принадлежит родителю из запроса
func (uc *UseCase) checkChildrenOwnership(ctx context.Context, req *Request) error {
	children, err := uc.childRepo.GetByParent(ctx, req.ParentID)
	if err != nil {
		uc.logger.Error("CreateSessionRequest: failed to get children for parent id=%d: %v", req.ParentID, err)
		return fmt.Errorf("%w: failed to get children: %v", ErrInternal, err)
	}

	owned := make(map[int64]struct{}, len(children))
	for _, child := range children {
		owned[child.ID] = struct{}{}
	}

	for _, id := range req.ChildIDs {
		if _, ok := owned[id]; !ok {
			uc.logger.Warn("CreateSessionRequest: child id=%d does not belong to parent id=%d", id, req.ParentID)
			return ErrChildNotFound
		}
	}

	return nil
}

// guardKey строит ключ защёлки: клиентский ключ идемпотентности, если он
// прислан, иначе запросы одного родителя считаются одной отправкой
func guardKey(req *Request) string {
	if req.IdempotencyKey != "" {
		return req.IdempotencyKey
	}
	return fmt.Sprintf("parent:%d", req.ParentID)
}
