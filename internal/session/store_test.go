package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"infocomm/internal/apperr"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, username, password string) (*Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

type mockPersistence struct {
	mock.Mock
}

func (m *mockPersistence) SaveSession(ctx context.Context, s *Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockPersistence) LoadSession(ctx context.Context) (*Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *mockPersistence) DeleteSession(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func adminSession() *Session {
	return &Session{
		ID:       uuid.MustParse("9a2b7c00-0000-4000-8000-000000000001"),
		Username: "admin",
		Role:     RoleAdmin,
	}
}

func TestLogin_Success(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	record := adminSession()
	validator.On("Validate", mock.Anything, "admin", "password").Return(record, nil)
	persistence.On("SaveSession", mock.Anything, record).Return(nil)

	err := store.Login(context.Background(), "admin", "password")
	assert.NoError(t, err)
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, "admin", store.Current().Username)
	assert.Empty(t, store.LastError())
	persistence.AssertExpectations(t)
}

func TestLogin_RejectedLeavesPersistedRecordUntouched(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	rejection := apperr.Authf("Identifiant ou mot de passe incorrect")
	validator.On("Validate", mock.Anything, "admin", "wrong").Return(nil, rejection)

	err := store.Login(context.Background(), "admin", "wrong")
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))
	assert.Equal(t, StateAuthError, store.State())
	assert.Nil(t, store.Current())
	assert.Equal(t, "Identifiant ou mot de passe incorrect", store.LastError())

	persistence.AssertNotCalled(t, "SaveSession", mock.Anything, mock.Anything)
	persistence.AssertNotCalled(t, "DeleteSession", mock.Anything)
}

func TestLogin_PersistenceFailureStillAuthenticates(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	record := adminSession()
	validator.On("Validate", mock.Anything, "admin", "password").Return(record, nil)
	persistence.On("SaveSession", mock.Anything, record).Return(errors.New("redis down"))

	err := store.Login(context.Background(), "admin", "password")
	assert.NoError(t, err)
	assert.Equal(t, StateAuthenticated, store.State())
}

func TestLogin_RecoveryAfterFailure(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	validator.On("Validate", mock.Anything, "admin", "wrong").
		Return(nil, apperr.Authf("Identifiant ou mot de passe incorrect")).Once()
	validator.On("Validate", mock.Anything, "admin", "password").Return(adminSession(), nil).Once()
	persistence.On("SaveSession", mock.Anything, mock.Anything).Return(nil)

	assert.Error(t, store.Login(context.Background(), "admin", "wrong"))
	assert.Equal(t, StateAuthError, store.State())

	assert.NoError(t, store.Login(context.Background(), "admin", "password"))
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Empty(t, store.LastError())
}

func TestLogout_IsIdempotent(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	persistence.On("DeleteSession", mock.Anything).Return(nil)

	assert.NoError(t, store.Logout(context.Background()))
	assert.NoError(t, store.Logout(context.Background()))
	assert.Equal(t, StateUnauthenticated, store.State())
	assert.Nil(t, store.Current())
	persistence.AssertNumberOfCalls(t, "DeleteSession", 2)
}

func TestLogout_ClearsAuthError(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	validator.On("Validate", mock.Anything, "admin", "wrong").
		Return(nil, apperr.Authf("Identifiant ou mot de passe incorrect"))
	persistence.On("DeleteSession", mock.Anything).Return(nil)

	_ = store.Login(context.Background(), "admin", "wrong")
	assert.NoError(t, store.Logout(context.Background()))
	assert.Equal(t, StateUnauthenticated, store.State())
	assert.Empty(t, store.LastError())
}

func TestRestore_ExistingRecord(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	persistence.On("LoadSession", mock.Anything).Return(adminSession(), nil)

	assert.False(t, store.Restored())
	assert.NoError(t, store.Restore(context.Background()))
	assert.True(t, store.Restored())
	assert.Equal(t, StateAuthenticated, store.State())
	assert.Equal(t, "admin", store.Current().Username)
}

func TestRestore_NoRecord(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	persistence.On("LoadSession", mock.Anything).Return(nil, nil)

	assert.NoError(t, store.Restore(context.Background()))
	assert.True(t, store.Restored())
	assert.Equal(t, StateUnauthenticated, store.State())
}

func TestRestore_LoadFailure(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	persistence.On("LoadSession", mock.Anything).Return(nil, errors.New("redis down"))

	err := store.Restore(context.Background())
	assert.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRetrieval))
	assert.True(t, store.Restored())
	assert.Equal(t, StateUnauthenticated, store.State())
}

func TestDismissError(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	validator.On("Validate", mock.Anything, "admin", "wrong").
		Return(nil, apperr.Authf("Identifiant ou mot de passe incorrect"))

	_ = store.Login(context.Background(), "admin", "wrong")
	store.DismissError()
	assert.Equal(t, StateUnauthenticated, store.State())
	assert.Empty(t, store.LastError())

	// Dismiss outside AuthError is a no-op.
	store.DismissError()
	assert.Equal(t, StateUnauthenticated, store.State())
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	validator := new(mockValidator)
	persistence := new(mockPersistence)
	store := NewStore(validator, persistence)

	persistence.On("LoadSession", mock.Anything).Return(adminSession(), nil)
	assert.NoError(t, store.Restore(context.Background()))

	first := store.Current()
	first.Username = "tampered"
	assert.Equal(t, "admin", store.Current().Username)
}
