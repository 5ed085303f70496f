package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// SessionHandler exposes sign-in, sign-up and sign-out.
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// Login handles POST /session/login
func (h *SessionHandler) Login(c echo.Context) error {
	var creds entity.Credentials
	if err := c.Bind(&creds); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	session, err := h.sessionUC.Login(c.Request().Context(), &creds)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "Signed in")
}

// Register handles POST /session/register as a multipart form with an optional profileImage file.
func (h *SessionHandler) Register(c echo.Context) error {
	input := entity.Registration{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	var image *service.FilePart
	if header, err := c.FormFile("profileImage"); err == nil {
		file, err := header.Open()
		if err != nil {
			return response.BindingError(c, "Unreadable profile image")
		}
		defer file.Close()
		image = &service.FilePart{Filename: header.Filename, Content: file}
	}

	session, err := h.sessionUC.Register(c.Request().Context(), &input, image)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, session, "Account created")
}

// Logout handles POST /session/logout
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionUC.Logout(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Signed out")
}

// Current handles GET /session
func (h *SessionHandler) Current(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.sessionUC.Current(ctx)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session, "")
}

// Profile handles GET /session/profile
func (h *SessionHandler) Profile(c echo.Context) error {
	user, err := h.sessionUC.Profile(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "")
}
