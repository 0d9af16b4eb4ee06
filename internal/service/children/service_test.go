package children

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/events"
	childRepo "github.com/ovchr/BSM-SessionService/internal/infra/storage/child"
	"github.com/ovchr/BSM-SessionService/internal/service/children/models"
	"github.com/ovchr/BSM-SessionService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockRepo struct {
	children map[int64]*domain.Child
	nextID   int64
	deleted  []int64
}

func newMockRepo(children ...*domain.Child) *mockRepo {
	repo := &mockRepo{children: make(map[int64]*domain.Child)}
	for _, child := range children {
		repo.children[child.ID] = child
		if child.ID > repo.nextID {
			repo.nextID = child.ID
		}
	}
	return repo
}

func (m *mockRepo) Create(_ context.Context, child *domain.Child) (*domain.Child, error) {
	m.nextID++
	child.ID = m.nextID
	child.CreatedAt = time.Now()
	child.UpdatedAt = child.CreatedAt
	m.children[child.ID] = child
	return child, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*domain.Child, error) {
	child, ok := m.children[id]
	if !ok {
		return nil, childRepo.ErrChildNotFound
	}
	return child, nil
}

func (m *mockRepo) GetByParent(_ context.Context, parentID int64) ([]*domain.Child, error) {
	result := make([]*domain.Child, 0)
	for _, child := range m.children {
		if child.ParentID == parentID {
			result = append(result, child)
		}
	}
	return result, nil
}

func (m *mockRepo) Update(_ context.Context, child *domain.Child) error {
	if _, ok := m.children[child.ID]; !ok {
		return childRepo.ErrChildNotFound
	}
	m.children[child.ID] = child
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.children[id]; !ok {
		return childRepo.ErrChildNotFound
	}
	delete(m.children, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockPublisher struct {
	events []events.Event
}

func (m *mockPublisher) Publish(e events.Event) {
	m.events = append(m.events, e)
}

func TestCreate_PublishesEvent(t *testing.T) {
	repo := newMockRepo()
	publisher := &mockPublisher{}
	svc := NewService(repo, publisher, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateChildRequest{
		ParentID: 7,
		Name:     "  Миша  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Миша", resp.Name)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.EventChildrenUpdated, publisher.events[0].Type)
	assert.Equal(t, int64(7), publisher.events[0].ParentID)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := NewService(newMockRepo(), &mockPublisher{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateChildRequest{ParentID: 7, Name: "   "})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	repo := newMockRepo(&domain.Child{ID: 1, ParentID: 7, Name: "Миша"})
	svc := NewService(repo, &mockPublisher{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestGetByID_AgeComputed(t *testing.T) {
	dob := time.Now().AddDate(-5, 0, -1)
	repo := newMockRepo(&domain.Child{ID: 1, ParentID: 7, Name: "Вера", DateOfBirth: &dob})
	svc := NewService(repo, &mockPublisher{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)

	require.NotNil(t, resp.Age)
	assert.Equal(t, 5, *resp.Age)
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	repo := newMockRepo(&domain.Child{ID: 1, ParentID: 7, Name: "Миша"})
	publisher := &mockPublisher{}
	svc := NewService(repo, publisher, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateChildRequest{
		ParentID: 7,
		Name:     "Михаил",
		Notes:    ptr.Ptr("аллергия на орехи"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Михаил", resp.Name)
	assert.Len(t, publisher.events, 1)

	_, err = svc.Update(context.Background(), 1, &models.UpdateChildRequest{ParentID: 99, Name: "Чужой"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	repo := newMockRepo(&domain.Child{ID: 1, ParentID: 7, Name: "Миша"})
	publisher := &mockPublisher{}
	svc := NewService(repo, publisher, nopLogger{})

	err := svc.Delete(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), 1, 7))
	assert.Equal(t, []int64{1}, repo.deleted)
	assert.Len(t, publisher.events, 1)
}
