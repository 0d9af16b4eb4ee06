package requests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
	requestRepo "github.com/ovchr/BSM-SessionService/internal/infra/storage/sessionrequest"
	"github.com/ovchr/BSM-SessionService/internal/integrations/userservice"
	"github.com/ovchr/BSM-SessionService/internal/service/requests/models"
	"github.com/ovchr/BSM-SessionService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockRepo struct {
	requests map[int64]*domain.SessionRequest
	inbox    []*domain.SessionRequest

	statusUpdates []domain.RequestStatus
	cancelled     []domain.RequestStatus
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*domain.SessionRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return nil, requestRepo.ErrRequestNotFound
	}
	return request, nil
}

func (m *mockRepo) GetByParentWithFilter(_ context.Context, filter domain.ParentRequestsFilter) ([]*domain.SessionRequest, error) {
	result := make([]*domain.SessionRequest, 0)
	for _, request := range m.requests {
		if request.ParentID == filter.ParentID {
			result = append(result, request)
		}
	}
	return result, nil
}

func (m *mockRepo) GetInbox(context.Context, domain.SitterInboxFilter) ([]*domain.SessionRequest, error) {
	return m.inbox, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id int64, status domain.RequestStatus, _ *int64) error {
	if _, ok := m.requests[id]; !ok {
		return requestRepo.ErrRequestNotFound
	}
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockRepo) Cancel(_ context.Context, id int64, status domain.RequestStatus, _ string) error {
	if _, ok := m.requests[id]; !ok {
		return requestRepo.ErrRequestNotFound
	}
	m.cancelled = append(m.cancelled, status)
	return nil
}

type mockUsers struct {
	sitter *userservice.Sitter
}

func (m *mockUsers) GetSitter(context.Context, int64) (*userservice.Sitter, error) {
	if m.sitter == nil {
		return nil, userservice.ErrSitterNotFound
	}
	return m.sitter, nil
}

type mockPublisher struct {
	events []events.Event
}

func (m *mockPublisher) Publish(e events.Event) {
	m.events = append(m.events, e)
}

func broadcastRequest(id int64, scope domain.SearchScope) *domain.SessionRequest {
	return &domain.SessionRequest{
		ID:          id,
		ParentID:    7,
		ChildID:     1,
		ChildIDs:    []int64{1},
		Status:      domain.StatusRequested,
		StartTime:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
		SearchScope: scope,
		Location:    domain.Location{Address: "ул. Ленина 5, Москва"},
	}
}

func newService(repo *mockRepo, users *mockUsers) (*Service, *mockPublisher) {
	publisher := &mockPublisher{}
	return NewService(repo, users, publisher, nopLogger{}), publisher
}

func TestGetByID_Access(t *testing.T) {
	invite := broadcastRequest(1, domain.ScopeInvite)
	invite.SitterID = ptr.Ptr(int64(42))

	accepted := broadcastRequest(2, domain.ScopeCity)
	accepted.Status = domain.StatusAccepted
	accepted.SitterID = ptr.Ptr(int64(42))

	open := broadcastRequest(3, domain.ScopeNationwide)

	repo := &mockRepo{requests: map[int64]*domain.SessionRequest{1: invite, 2: accepted, 3: open}}
	svc, _ := newService(repo, &mockUsers{})

	// Родитель видит свой запрос
	_, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)

	// Приглашённый ситтер видит приглашение, посторонний - нет
	_, err = svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)
	_, err = svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Принятый запрос закрыт для посторонних ситтеров
	_, err = svc.GetByID(context.Background(), 2, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Открытый широковещательный запрос виден любому
	_, err = svc.GetByID(context.Background(), 3, 99)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGetSitterInbox_ScopeFiltering(t *testing.T) {
	city := broadcastRequest(1, domain.ScopeCity)
	city.Location.City = ptr.Ptr("Москва")

	otherCity := broadcastRequest(2, domain.ScopeCity)
	otherCity.Location.City = ptr.Ptr("Казань")

	near := broadcastRequest(3, domain.ScopeNearby)
	near.Location.Latitude = ptr.Ptr(55.751)
	near.Location.Longitude = ptr.Ptr(37.618)
	near.MaxDistanceKm = ptr.Ptr(10.0)

	far := broadcastRequest(4, domain.ScopeNearby)
	far.Location.Latitude = ptr.Ptr(59.938) // Петербург, ~630 км
	far.Location.Longitude = ptr.Ptr(30.315)
	far.MaxDistanceKm = ptr.Ptr(10.0)

	nationwide := broadcastRequest(5, domain.ScopeNationwide)

	invite := broadcastRequest(6, domain.ScopeInvite)
	invite.SitterID = ptr.Ptr(int64(42))

	repo := &mockRepo{inbox: []*domain.SessionRequest{city, otherCity, near, far, nationwide, invite}}
	users := &mockUsers{sitter: &userservice.Sitter{
		ID:        42,
		City:      ptr.Ptr("москва"), // регистр не важен
		Latitude:  ptr.Ptr(55.755),
		Longitude: ptr.Ptr(37.617),
	}}
	svc, _ := newService(repo, users)

	resp, err := svc.GetSitterInbox(context.Background(), &models.GetSitterInboxRequest{SitterID: 42})
	require.NoError(t, err)

	ids := make([]int64, 0, len(resp.Requests))
	for _, r := range resp.Requests {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []int64{1, 3, 5, 6}, ids)
}

func TestGetSitterInbox_SitterNotFound(t *testing.T) {
	svc, _ := newService(&mockRepo{}, &mockUsers{})

	_, err := svc.GetSitterInbox(context.Background(), &models.GetSitterInboxRequest{SitterID: 42})

	assert.ErrorIs(t, err, ErrSitterNotFound)
}

func TestRespond_AcceptBindsSitter(t *testing.T) {
	open := broadcastRequest(1, domain.ScopeCity)
	repo := &mockRepo{requests: map[int64]*domain.SessionRequest{1: open}}
	svc, publisher := newService(repo, &mockUsers{})

	err := svc.Respond(context.Background(), 1, &models.RespondRequest{SitterID: 42, Accept: true})
	require.NoError(t, err)

	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, domain.StatusAccepted, repo.statusUpdates[0])

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.EventRequestStatusChanged, publisher.events[0].Type)
	assert.Equal(t, string(domain.StatusAccepted), publisher.events[0].Status)
}

func TestRespond_InviteOnlyForInvitedSitter(t *testing.T) {
	invite := broadcastRequest(1, domain.ScopeInvite)
	invite.SitterID = ptr.Ptr(int64(42))

	repo := &mockRepo{requests: map[int64]*domain.SessionRequest{1: invite}}
	svc, _ := newService(repo, &mockUsers{})

	err := svc.Respond(context.Background(), 1, &models.RespondRequest{SitterID: 99, Accept: true})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Respond(context.Background(), 1, &models.RespondRequest{SitterID: 42, Accept: false})
	require.NoError(t, err)
	require.Len(t, repo.statusUpdates, 1)
	assert.Equal(t, domain.StatusDeclined, repo.statusUpdates[0])
}

func TestRespond_BroadcastDeclineKeepsRequestOpen(t *testing.T) {
	open := broadcastRequest(1, domain.ScopeNationwide)
	repo := &mockRepo{requests: map[int64]*domain.SessionRequest{1: open}}
	svc, publisher := newService(repo, &mockUsers{})

	err := svc.Respond(context.Background(), 1, &models.RespondRequest{SitterID: 42, Accept: false})
	require.NoError(t, err)

	assert.Empty(t, repo.statusUpdates)
	assert.Empty(t, publisher.events)
}

func TestRespond_AlreadyAnswered(t *testing.T) {
	accepted := broadcastRequest(1, domain.ScopeCity)
	accepted.Status = domain.StatusAccepted

	repo := &mockRepo{requests: map[int64]*domain.SessionRequest{1: accepted}}
	svc, _ := newService(repo, &mockUsers{})

	err := svc.Respond(context.Background(), 1, &models.RespondRequest{SitterID: 42, Accept: true})

	assert.ErrorIs(t, err, ErrCannotRespond)
}

func TestCancel_ByParentAndBySitter(t *testing.T) {
	own := broadcastRequest(1, domain.ScopeCity)

	accepted := broadcastRequest(2, domain.ScopeCity)
	accepted.Status = domain.StatusAccepted
	accepted.SitterID = ptr.Ptr(int64(42))

	repo := &mockRepo{requests: map[int64]*domain.SessionRequest{1: own, 2: accepted}}
	svc, publisher := newService(repo, &mockUsers{})

	require.NoError(t, svc.Cancel(context.Background(), 1, &models.CancelRequest{UserID: 7, CancellationReason: "планы изменились"}))
	require.NoError(t, svc.Cancel(context.Background(), 2, &models.CancelRequest{UserID: 42}))

	require.Len(t, repo.cancelled, 2)
	assert.Equal(t, domain.StatusCancelledByParent, repo.cancelled[0])
	assert.Equal(t, domain.StatusCancelledBySitter, repo.cancelled[1])
	assert.Len(t, publisher.events, 2)
}

func TestCancel_Denied(t *testing.T) {
	open := broadcastRequest(1, domain.ScopeCity)

	done := broadcastRequest(2, domain.ScopeCity)
	done.Status = domain.StatusCompleted

	repo := &mockRepo{requests: map[int64]*domain.SessionRequest{1: open, 2: done}}
	svc, _ := newService(repo, &mockUsers{})

	// Посторонний ситтер не может отменить ожидающий запрос
	err := svc.Cancel(context.Background(), 1, &models.CancelRequest{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Завершённую сессию отменить нельзя даже родителю
	err = svc.Cancel(context.Background(), 2, &models.CancelRequest{UserID: 7})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestHaversineKm(t *testing.T) {
	// Москва - Санкт-Петербург, около 635 км
	distance := haversineKm(55.7558, 37.6173, 59.9311, 30.3609)
	assert.InDelta(t, 635, distance, 15)

	assert.Zero(t, haversineKm(55.75, 37.61, 55.75, 37.61))
}
