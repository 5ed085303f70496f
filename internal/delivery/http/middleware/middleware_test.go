package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSessions struct {
	session *entity.Session
	err     error
}

func (s *stubSessions) Login(context.Context, *entity.Credentials) (*entity.Session, error) {
	return nil, errors.New("not used")
}

func (s *stubSessions) Register(context.Context, *entity.Registration, *service.FilePart) (*entity.Session, error) {
	return nil, errors.New("not used")
}

func (s *stubSessions) Logout(context.Context) error { return nil }

func (s *stubSessions) Current(context.Context) (*entity.Session, error) {
	return s.session, s.err
}

func (s *stubSessions) Profile(context.Context) (*entity.User, error) {
	return nil, errors.New("not used")
}

func TestSessionMiddleware_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		sessions *stubSessions
		want     *entity.Session
	}{
		{
			name:     "attaches stored session",
			sessions: &stubSessions{session: &entity.Session{Token: "tok", UserID: "u1", Role: entity.RoleCustomer}},
			want:     &entity.Session{Token: "tok", UserID: "u1", Role: entity.RoleCustomer},
		},
		{
			name:     "passes through without session",
			sessions: &stubSessions{err: domainerrors.ErrUnauthenticated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

			called := false
			mw := NewSessionMiddleware(tt.sessions, newDiscardLogger())
			err := mw.Resolve(func(c echo.Context) error {
				called = true
				assert.Equal(t, tt.want, deliverycontext.GetSession(c))

				return nil
			})(c)

			require.NoError(t, err)
			assert.True(t, called)
		})
	}
}

func TestRequestIDMiddleware_Process(t *testing.T) {
	t.Run("reuses caller id", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(deliverycontext.HeaderXRequestID, "req-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := NewRequestIDMiddleware(newDiscardLogger()).Process(func(c echo.Context) error {
			assert.Equal(t, "req-1", deliverycontext.GetRequestID(c))
			assert.Equal(t, "req-1", deliverycontext.GetRequestIDFromContext(c.Request().Context()))

			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, "req-1", rec.Header().Get(deliverycontext.HeaderXRequestID))
	})

	t.Run("generates id", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		err := NewRequestIDMiddleware(newDiscardLogger()).Process(func(echo.Context) error { return nil })(c)

		require.NoError(t, err)
		assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
	})
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "domain error",
			err:        errors.WithStack(domainerrors.ErrCartEmpty),
			wantStatus: http.StatusBadRequest,
			wantCode:   "CART_EMPTY",
		},
		{
			name:       "remote rejection",
			err:        domainerrors.NewAPIError(http.MethodPost, "/api/orders", http.StatusForbidden, "admins only"),
			wantStatus: http.StatusForbidden,
			wantCode:   "API_ERROR",
		},
		{
			name:       "echo error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"),
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}
