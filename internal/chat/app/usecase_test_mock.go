package app

import (
	"context"

	"workforce_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert moke insert message
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByID moke find message by id
func (m *MockMessageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// History moke find conversation history
func (m *MockMessageRepository) History(ctx context.Context, filter domain.HistoryFilter, limit, skip int64) ([]domain.Message, error) {
	args := m.Called(ctx, filter, limit, skip)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead moke bulk mark read
func (m *MockMessageRepository) MarkRead(ctx context.Context, scope domain.ReadScope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

// UpdateStatus moke advance message status
func (m *MockMessageRepository) UpdateStatus(ctx context.Context, messageID string, status domain.MessageStatus) (*domain.Message, error) {
	args := m.Called(ctx, messageID, status)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// Conversations moke derive conversation summaries
func (m *MockMessageRepository) Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ConversationSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGroupRepository Mock GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

// Create moke create group
func (m *MockGroupRepository) Create(ctx context.Context, group *domain.ChatGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// FindByID moke find group by id
func (m *MockGroupRepository) FindByID(ctx context.Context, groupID string) (*domain.ChatGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ChatGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByMember moke find groups by member
func (m *MockGroupRepository) FindByMember(ctx context.Context, userID string) ([]domain.ChatGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChatGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindDepartmentGroup moke find department group
func (m *MockGroupRepository) FindDepartmentGroup(ctx context.Context, department string) (*domain.ChatGroup, error) {
	args := m.Called(ctx, department)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ChatGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// Update moke update group
func (m *MockGroupRepository) Update(ctx context.Context, group *domain.ChatGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// Deactivate moke deactivate group
func (m *MockGroupRepository) Deactivate(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

// MockUserRepository Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

// FindByID moke find user by id
func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindActiveByDepartment moke find department roster
func (m *MockUserRepository) FindActiveByDepartment(ctx context.Context, department string) ([]domain.User, error) {
	args := m.Called(ctx, department)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindActiveIDs moke list active user ids
func (m *MockUserRepository) FindActiveIDs(ctx context.Context, excludeID string) ([]string, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNotificationRepository Mock NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

// Insert moke insert notification
func (m *MockNotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// FindByTarget moke find notifications by target
func (m *MockNotificationRepository) FindByTarget(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead moke mark notification read
func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

// MockPubSub Mock PubSub
type MockPubSub struct {
	mock.Mock
}

// Publish moke publish event
func (m *MockPubSub) Publish(channel string, event domain.WSEvent) error {
	args := m.Called(channel, event)
	return args.Error(0)
}

// Subscribe moke subscribe channel
func (m *MockPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.WSEvent)) error {
	args := m.Called(ctx, channel, handler)
	return args.Error(0)
}
