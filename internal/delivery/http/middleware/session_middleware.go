package middleware

import (
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware attaches the persisted session, if any, to each request.
// It never rejects: the usecases decide which operations need a credential.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionUsecase, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, logger: logger}
}

// Resolve reads the session from the store for this request.
func (m *SessionMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.sessions.Current(c.Request().Context())
		if err != nil {
			m.logger.Debug("No active session", slog.String("reason", err.Error()))

			return next(c)
		}
		deliverycontext.SetSession(c, session)

		return next(c)
	}
}
