package impl

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/tidwall/gjson"
	"go.uber.org/fx"
)

const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"
	pathUsers    = "/api/users/"
)

type sessionService struct {
	api       service.APIClient
	store     repository.KeyValueStore
	inspector service.TokenInspector
	logger    *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	API       service.APIClient
	Store     repository.KeyValueStore
	Inspector service.TokenInspector
	Logger    *slog.Logger
}

// NewSessionService creates the session usecase.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		api:       params.API,
		store:     params.Store,
		inspector: params.Inspector,
		logger:    params.Logger,
	}
}

func (s *sessionService) Login(ctx context.Context, creds *entity.Credentials) (*entity.Session, error) {
	if err := validateInput(creds); err != nil {
		return nil, err
	}

	body, err := s.api.Do(ctx, &service.Request{
		Method: http.MethodPost,
		Path:   pathLogin,
		Body:   creds,
	})
	if err != nil {
		s.logger.Warn("Login rejected", slog.String("email", creds.Email), slog.Any("error", err))

		return nil, err
	}

	return s.establish(ctx, body)
}

func (s *sessionService) Register(ctx context.Context, input *entity.Registration, image *service.FilePart) (*entity.Session, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	req := &service.Request{
		Method: http.MethodPost,
		Path:   pathRegister,
		Fields: map[string]string{
			"name":     input.Name,
			"email":    input.Email,
			"password": input.Password,
		},
	}
	if image != nil && image.Content != nil {
		image.Field = "profileImage"
		req.File = image
	}

	body, err := s.api.Do(ctx, req)
	if err != nil {
		s.logger.Warn("Registration rejected", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	return s.establish(ctx, body)
}

// establish reads the auth response and persists the session. Persistence is best-effort.
func (s *sessionService) establish(ctx context.Context, body []byte) (*entity.Session, error) {
	result, err := parseAuthResult(body)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		Token:  result.Token,
		UserID: result.User.ID,
		Role:   entity.ParseRole(string(result.User.Role)),
	}

	for key, value := range map[string]string{
		repository.KeyToken:    session.Token,
		repository.KeyUserID:   session.UserID,
		repository.KeyUserRole: string(session.Role),
	} {
		if err := repository.SetJSON(ctx, s.store, key, value); err != nil {
			s.logger.Error("Failed to persist session", slog.String("key", key), slog.Any("error", err))
		}
	}

	return session, nil
}

// parseAuthResult accepts {token, user:{...}} as well as flat {token, userId|_id, role}.
func parseAuthResult(body []byte) (*entity.AuthResult, error) {
	root := gjson.ParseBytes(body)

	token := root.Get("token").String()
	if token == "" {
		token = root.Get("accessToken").String()
	}
	if token == "" {
		return nil, errors.New("auth response carries no token")
	}

	result := &entity.AuthResult{Token: token}
	if user := root.Get("user"); user.IsObject() {
		decoded, err := decodeEntity[entity.User]([]byte(user.Raw))
		if err != nil {
			return nil, err
		}
		result.User = *decoded
	}

	if result.User.ID == "" {
		for _, key := range []string{"userId", "_id", "id", "user"} {
			if v := root.Get(key); v.Type == gjson.String && v.String() != "" {
				result.User.ID = v.String()

				break
			}
		}
	}
	if result.User.Role == "" {
		result.User.Role = entity.Role(root.Get("role").String())
	}

	return result, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	var errs []error
	for _, key := range []string{repository.KeyToken, repository.KeyUserID, repository.KeyUserRole} {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, errors.Wrapf(err, "delete %s", key))
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error("Failed to clear session", slog.Any("error", err))

		return err
	}

	return nil
}

// Current rebuilds the session from the store on each call so that other writers are seen.
func (s *sessionService) Current(ctx context.Context) (*entity.Session, error) {
	var token, userID, role string

	found, err := repository.GetJSON(ctx, s.store, repository.KeyToken, &token)
	if err != nil {
		s.logger.Error("Failed to read session token", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated
	}
	if !found || token == "" {
		return nil, domainerrors.ErrUnauthenticated
	}
	if s.inspector != nil && s.inspector.Expired(token) {
		return nil, domainerrors.ErrUnauthenticated.WithDetails("session expired")
	}

	if _, err := repository.GetJSON(ctx, s.store, repository.KeyUserID, &userID); err != nil {
		s.logger.Error("Failed to read session user", slog.Any("error", err))
	}
	if _, err := repository.GetJSON(ctx, s.store, repository.KeyUserRole, &role); err != nil {
		s.logger.Error("Failed to read session role", slog.Any("error", err))
	}

	return &entity.Session{Token: token, UserID: userID, Role: entity.ParseRole(role)}, nil
}

func (s *sessionService) Profile(ctx context.Context) (*entity.User, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session.UserID == "" {
		return nil, domainerrors.ErrMissingUserID
	}

	body, err := s.api.Do(ctx, &service.Request{
		Method: http.MethodGet,
		Path:   pathUsers + session.UserID,
		Token:  session.Token,
	})
	if err != nil {
		return nil, err
	}

	return decodeEntity[entity.User](body, "user")
}
