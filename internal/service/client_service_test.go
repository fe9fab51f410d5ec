package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"clienttrack/internal/cache"
	"clienttrack/internal/errors"
	"clienttrack/internal/model"
)

// nilCache exercises the fail-safe path of the cache client in tests.
var nilCache *cache.Client

// MockClientRepository is a mock implementation of ClientRepository.
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *model.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, userID uint, client *model.Client) error {
	args := m.Called(ctx, userID, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, userID, clientID uint) (*model.Client, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepository) ListByUser(ctx context.Context, userID uint) ([]model.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, userID, clientID uint) error {
	args := m.Called(ctx, userID, clientID)
	return args.Error(0)
}

func TestClientService_Create(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		input         ClientInput
		setupMock     func(*MockClientRepository)
		expectedError error
	}{
		{
			name:   "successful create stamps owner",
			userID: 3,
			input:  ClientInput{Name: "Acme", Company: "Acme Ltd", Status: "Active"},
			setupMock: func(m *MockClientRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Client) bool {
					return c.UserID == 3 && c.Name == "Acme"
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "blank name rejected",
			userID:        3,
			input:         ClientInput{Name: "   "},
			setupMock:     func(m *MockClientRepository) {},
			expectedError: errors.ErrNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockClientRepository)
			tt.setupMock(mockRepo)

			svc := NewClientService(mockRepo, nilCache)
			client, err := svc.Create(context.Background(), tt.userID, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, client)
				// No mutation may happen on a validation failure.
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.userID, client.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestClientService_Get_NotFoundHidesOwnership(t *testing.T) {
	mockRepo := new(MockClientRepository)
	// The repository reports a foreign-owned client exactly like a missing
	// one, so the service can only ever surface ErrClientNotFound.
	mockRepo.On("FindByID", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewClientService(mockRepo, nilCache)
	client, err := svc.Get(context.Background(), 2, 10)

	assert.Nil(t, client)
	assert.Equal(t, errors.ErrClientNotFound, err)
	mockRepo.AssertExpectations(t)
}

func TestClientService_Update(t *testing.T) {
	tests := []struct {
		name          string
		input         ClientInput
		setupMock     func(*MockClientRepository)
		expectedError error
	}{
		{
			name:  "successful update keeps owner",
			input: ClientInput{Name: "Acme Renamed", Status: "Inactive"},
			setupMock: func(m *MockClientRepository) {
				m.On("FindByID", mock.Anything, uint(2), uint(10)).Return(&model.Client{
					ID: 10, UserID: 2, Name: "Acme",
				}, nil)
				m.On("Update", mock.Anything, uint(2), mock.MatchedBy(func(c *model.Client) bool {
					return c.UserID == 2 && c.Name == "Acme Renamed"
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "foreign client reads as not found",
			input: ClientInput{Name: "Acme Renamed"},
			setupMock: func(m *MockClientRepository) {
				m.On("FindByID", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrClientNotFound,
		},
		{
			name:          "blank name rejected",
			input:         ClientInput{Name: ""},
			setupMock:     func(m *MockClientRepository) {},
			expectedError: errors.ErrNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockClientRepository)
			tt.setupMock(mockRepo)

			svc := NewClientService(mockRepo, nilCache)
			client, err := svc.Update(context.Background(), 2, 10, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, client)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Acme Renamed", client.Name)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestClientService_Delete_ForeignClientIsNoop(t *testing.T) {
	mockRepo := new(MockClientRepository)
	// Repository contract: deleting someone else's client affects zero rows
	// and returns no error.
	mockRepo.On("Delete", mock.Anything, uint(2), uint(99)).Return(nil)

	svc := NewClientService(mockRepo, nilCache)
	assert.NoError(t, svc.Delete(context.Background(), 2, 99))
	mockRepo.AssertExpectations(t)
}
