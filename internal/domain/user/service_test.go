package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"passkeeper/internal/crypto"
	"passkeeper/internal/domain/session"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository, algorithm string) *Service {
	return NewService(repo, NewBoundaryValidator(), algorithm, slog.Default())
}

func storedUser(t *testing.T, username, password, algorithm string) *User {
	t.Helper()

	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	params, err := crypto.NewKeyParams(algorithm)
	require.NoError(t, err)

	return &User{ID: "user-1", Username: username, PasswordHash: hash, KeyParams: params}
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, ErrNotFound)
	// we can't predict the exact hash, so check that it's a verifier and not the raw password
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Username == "alice" &&
			u.ID != "" &&
			u.PasswordHash != "" &&
			u.PasswordHash != "Secr3t!" &&
			u.KeyParams.Algorithm == crypto.AlgSHA256
	})).Return(nil)

	u, err := service.Register(context.Background(), "alice", "Secr3t!")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, crypto.VerifyPasswordHash("Secr3t!", u.PasswordHash))

	mockRepo.AssertExpectations(t)
}

func TestService_Register_SaltedAlgorithm(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgArgon2id)

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	u, err := service.Register(context.Background(), "alice", "Secr3t!")
	require.NoError(t, err)
	assert.Equal(t, crypto.AlgArgon2id, u.KeyParams.Algorithm)
	assert.Len(t, u.KeyParams.Salt, crypto.SaltSize)
}

func TestService_Register_Duplicate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(storedUser(t, "alice", "Secr3t!", crypto.AlgSHA256), nil)

	_, err := service.Register(context.Background(), "alice", "other")
	assert.Equal(t, ErrDuplicateUsername, err)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_DuplicateOnInsert(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(ErrDuplicateUsername)

	_, err := service.Register(context.Background(), "alice", "Secr3t!")
	assert.Equal(t, ErrDuplicateUsername, err)
}

func TestService_Register_InvalidInput(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	_, err := service.Register(context.Background(), "a b", "Secr3t!")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("database error"))

	_, err := service.Register(context.Background(), "alice", "Secr3t!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
}

func TestService_Authenticate_Success(t *testing.T) {
	for _, alg := range []string{crypto.AlgSHA256, crypto.AlgPBKDF2, crypto.AlgArgon2id} {
		t.Run(alg, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo, alg)

			stored := storedUser(t, "alice", "Secr3t!", alg)
			mockRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

			sess, err := service.Authenticate(context.Background(), "alice", "Secr3t!")
			require.NoError(t, err)
			defer sess.Close()

			assert.Equal(t, stored.ID, sess.UserID())
			assert.Equal(t, "alice", sess.Username())

			key, err := sess.Key()
			require.NoError(t, err)
			expected, err := crypto.DeriveKeyWithParams("Secr3t!", stored.KeyParams)
			require.NoError(t, err)
			assert.Equal(t, expected, key)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Authenticate_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		found    bool
	}{
		{name: "wrong password", username: "alice", password: "wrong", found: true},
		{name: "unknown user", username: "ghost", password: "Secr3t!", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo, crypto.AlgSHA256)

			if tt.found {
				mockRepo.On("FindByUsername", mock.Anything, tt.username).
					Return(storedUser(t, tt.username, "Secr3t!", crypto.AlgSHA256), nil)
			} else {
				mockRepo.On("FindByUsername", mock.Anything, tt.username).Return(nil, ErrNotFound)
			}

			sess, err := service.Authenticate(context.Background(), tt.username, tt.password)
			assert.Nil(t, sess)
			assert.Equal(t, ErrInvalidCredentials, err)
			assert.ErrorIs(t, err, session.ErrNotAuthenticated)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Authenticate_InvalidLogin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	_, err := service.Authenticate(context.Background(), "", "Secr3t!")
	assert.Equal(t, ErrInvalidCredentials, err)

	mockRepo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

// countVerifications подменяет сравнение хеша и считает вызовы
func countVerifications(t *testing.T) *int {
	t.Helper()
	calls := 0
	orig := verifyPassword
	verifyPassword = func(password, hash string) bool {
		calls++
		return orig(password, hash)
	}
	t.Cleanup(func() { verifyPassword = orig })
	return &calls
}

func TestService_Authenticate_EveryRejectionComparesHash(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		setup    func(t *testing.T, m *MockRepository)
	}{
		{name: "malformed login", username: "a", password: "Secr3t!"},
		{name: "empty login", username: "", password: "Secr3t!"},
		{
			name:     "unknown user",
			username: "ghost",
			password: "Secr3t!",
			setup: func(t *testing.T, m *MockRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, ErrNotFound)
			},
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setup: func(t *testing.T, m *MockRepository) {
				m.On("FindByUsername", mock.Anything, "alice").
					Return(storedUser(t, "alice", "Secr3t!", crypto.AlgSHA256), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			if tt.setup != nil {
				tt.setup(t, mockRepo)
			}
			service := newTestService(mockRepo, crypto.AlgSHA256)
			calls := countVerifications(t)

			_, err := service.Authenticate(context.Background(), tt.username, tt.password)
			assert.Equal(t, ErrInvalidCredentials, err)
			assert.Equal(t, 1, *calls)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_Authenticate_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("disk I/O error"))

	_, err := service.Authenticate(context.Background(), "alice", "Secr3t!")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestService_FindByUsername(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	stored := storedUser(t, "alice", "Secr3t!", crypto.AlgSHA256)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, ErrNotFound)

	u, err := service.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, stored, u)

	u, err = service.FindByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestService_Delete(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	sess := session.New("user-1", "alice", crypto.DeriveKey("Secr3t!"))
	mockRepo.On("Delete", mock.Anything, "user-1").Return(nil)

	require.NoError(t, service.Delete(context.Background(), sess))
	mockRepo.AssertExpectations(t)
}

func TestService_Delete_NotAuthenticated(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, crypto.AlgSHA256)

	err := service.Delete(context.Background(), nil)
	assert.Equal(t, session.ErrNotAuthenticated, err)

	closed := session.New("user-1", "alice", crypto.DeriveKey("Secr3t!"))
	closed.Close()
	err = service.Delete(context.Background(), closed)
	assert.Equal(t, session.ErrNotAuthenticated, err)

	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
