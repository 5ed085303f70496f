package impl

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubInspector treats the listed tokens as expired.
type stubInspector map[string]bool

func (s stubInspector) Expired(token string) bool { return s[token] }

func newTestSessionService(api service.APIClient, store repository.KeyValueStore, inspector service.TokenInspector) *sessionService {
	return NewSessionService(SessionServiceParams{
		API:       api,
		Store:     store,
		Inspector: inspector,
		Logger:    newDiscardLogger(),
	}).(*sessionService)
}

func TestSessionService_LoginPersistsSession(t *testing.T) {
	store := memory.NewKVStore()
	api := new(mockAPIClient)
	api.On("Do", mock.Anything, mock.MatchedBy(func(r *service.Request) bool {
		creds, ok := r.Body.(*entity.Credentials)

		return r.Method == http.MethodPost && r.Path == "/api/auth/login" && r.Token == "" && ok && creds.Email == "ada@example.com"
	})).Return([]byte(`{"token":"tok","user":{"_id":"u1","name":"Ada","role":"admin"}}`), nil).Once()
	svc := newTestSessionService(api, store, stubInspector{})
	ctx := context.Background()

	session, err := svc.Login(ctx, &entity.Credentials{Email: "ada@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, &entity.Session{Token: "tok", UserID: "u1", Role: entity.RoleAdmin}, session)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, current)

	var stored string
	_, err = repository.GetJSON(ctx, store, repository.KeyUserRole, &stored)
	require.NoError(t, err)
	assert.Equal(t, "admin", stored)
}

func TestSessionService_LoginAcceptsFlatResponse(t *testing.T) {
	api := new(mockAPIClient)
	api.On("Do", mock.Anything, call(http.MethodPost, "/api/auth/login")).
		Return([]byte(`{"token":"tok","userId":"u9","role":"superuser"}`), nil).Once()
	svc := newTestSessionService(api, memory.NewKVStore(), nil)

	session, err := svc.Login(context.Background(), &entity.Credentials{Email: "b@example.com", Password: "x"})

	require.NoError(t, err)
	assert.Equal(t, "u9", session.UserID)
	assert.Equal(t, entity.RoleCustomer, session.Role)
}

func TestSessionService_LoginFailures(t *testing.T) {
	api := new(mockAPIClient)
	api.On("Do", mock.Anything, call(http.MethodPost, "/api/auth/login")).
		Return(nil, domainerrors.NewAPIError(http.MethodPost, "/api/auth/login", http.StatusUnauthorized, "Invalid credentials")).Once()
	svc := newTestSessionService(api, memory.NewKVStore(), nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, &entity.Credentials{Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.Login(ctx, &entity.Credentials{Email: "a@example.com", Password: "wrong"})
	var apiErr *domainerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message())

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestSessionService_RegisterSendsMultipart(t *testing.T) {
	api := new(mockAPIClient)
	api.On("Do", mock.Anything, mock.MatchedBy(func(r *service.Request) bool {
		return r.Path == "/api/auth/register" && r.Body == nil &&
			r.Fields["name"] == "Ada" && r.File != nil && r.File.Field == "profileImage"
	})).Return([]byte(`{"token":"tok","user":{"_id":"u1","role":"customer"}}`), nil).Once()
	svc := newTestSessionService(api, memory.NewKVStore(), nil)

	session, err := svc.Register(context.Background(),
		&entity.Registration{Name: "Ada", Email: "ada@example.com", Password: "secret1"},
		&service.FilePart{Filename: "me.png", Content: strings.NewReader("png")})

	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	api.AssertExpectations(t)
}

func TestSessionService_RegisterWithoutImage(t *testing.T) {
	api := new(mockAPIClient)
	api.On("Do", mock.Anything, mock.MatchedBy(func(r *service.Request) bool {
		return r.Path == "/api/auth/register" && r.Fields != nil && r.File == nil
	})).Return([]byte(`{"token":"tok","_id":"u2"}`), nil).Once()
	svc := newTestSessionService(api, memory.NewKVStore(), nil)

	session, err := svc.Register(context.Background(), &entity.Registration{Name: "B", Email: "b@example.com", Password: "secret1"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "u2", session.UserID)

	_, err = svc.Register(context.Background(), &entity.Registration{Name: "B", Email: "b@example.com", Password: "123"}, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSessionService_CurrentTreatsExpiredTokenAsSignedOut(t *testing.T) {
	store := memory.NewKVStore()
	ctx := context.Background()
	require.NoError(t, repository.SetJSON(ctx, store, repository.KeyToken, "old"))
	require.NoError(t, repository.SetJSON(ctx, store, repository.KeyUserID, "u1"))
	svc := newTestSessionService(new(mockAPIClient), store, stubInspector{"old": true})

	_, err := svc.Current(ctx)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestSessionService_CurrentStoreFailureIsSignedOut(t *testing.T) {
	svc := newTestSessionService(new(mockAPIClient), failingStore{}, nil)

	_, err := svc.Current(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestSessionService_Logout(t *testing.T) {
	store := memory.NewKVStore()
	ctx := context.Background()
	require.NoError(t, repository.SetJSON(ctx, store, repository.KeyToken, "tok"))
	svc := newTestSessionService(new(mockAPIClient), store, nil)

	require.NoError(t, svc.Logout(ctx))

	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	assert.Error(t, newTestSessionService(new(mockAPIClient), failingStore{}, nil).Logout(ctx))
}

func TestSessionService_Profile(t *testing.T) {
	store := memory.NewKVStore()
	ctx := context.Background()
	require.NoError(t, repository.SetJSON(ctx, store, repository.KeyToken, "tok"))
	require.NoError(t, repository.SetJSON(ctx, store, repository.KeyUserID, "u1"))
	api := new(mockAPIClient)
	api.On("Do", mock.Anything, mock.MatchedBy(func(r *service.Request) bool {
		return r.Method == http.MethodGet && r.Path == "/api/users/u1" && r.Token == "tok"
	})).Return([]byte(`{"user":{"_id":"u1","name":"Ada","email":"ada@example.com"}}`), nil).Once()
	svc := newTestSessionService(api, store, nil)

	user, err := svc.Profile(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
}
