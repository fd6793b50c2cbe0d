package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant/pkg/apperrors"
	"restaurant/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	args := m.Called(req, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id int, changes *models.UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) SetSuspended(id int, suspended bool) error {
	args := m.Called(id, suspended)
	return args.Error(0)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", "admin")
	return c, w
}

func TestRegisterUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := NewHandler(mockRepo)

	tests := []struct {
		name           string
		payload        models.CreateUserRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful registration",
			payload: models.CreateUserRequest{
				Username: "barista",
				Password: "password123",
				Fullname: "Test Barista",
				Role:     "staff",
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "duplicate username",
			payload: models.CreateUserRequest{
				Username: "barista",
				Password: "password123",
				Role:     "staff",
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.Anything, mock.Anything).Return(apperrors.Conflict("username is taken"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "repository error",
			payload: models.CreateUserRequest{
				Username: "barista",
				Password: "password123",
				Role:     "staff",
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.Anything, mock.Anything).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))

			handler.RegisterUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSuspendUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		userID         string
		suspended      bool
		setupMock      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name:      "suspend regular user",
			userID:    "5",
			suspended: true,
			setupMock: func(m *MockUserRepository) {
				m.On("SetSuspended", 5, true).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "suspending last active admin is refused",
			userID:    "1",
			suspended: true,
			setupMock: func(m *MockUserRepository) {
				m.On("SetSuspended", 1, true).Return(apperrors.Conflict("cannot suspend the last active admin"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:      "reinstate user",
			userID:    "5",
			suspended: false,
			setupMock: func(m *MockUserRepository) {
				m.On("SetSuspended", 5, false).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "unknown user",
			userID:    "99",
			suspended: true,
			setupMock: func(m *MockUserRepository) {
				m.On("SetSuspended", 99, true).Return(apperrors.NotFound("user", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			handler := NewHandler(mockRepo)

			c, w := setupTestContext()
			c.Params = gin.Params{{Key: "id", Value: tt.userID}}

			body, _ := json.Marshal(map[string]bool{"suspended": tt.suspended})
			c.Request = httptest.NewRequest("PATCH", "/users/"+tt.userID+"/suspend", bytes.NewBuffer(body))

			handler.SuspendUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}
