package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/infra/api"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/notification"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/infra/qrcode"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

type capturedRequest struct {
	auth string
	body map[string]any
}

// fakeStorefrontAPI stands in for the remote API. Order creations are reported on orders.
func fakeStorefrontAPI(t *testing.T, orders chan<- capturedRequest) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"opaque-token","user":{"_id":"u1","name":"Ada","role":"user"}}`))
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"p1","name":"Tea","price":12.5,"category":"Drinks","banner":"weird"},
			{"_id":"p2","name":"Mug","price":8,"category":"Kitchen","banner":"sale"}]`))
	})
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		orders <- capturedRequest{auth: r.Header.Get("Authorization"), body: body}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"o1","userId":"u1","status":"Pending","totalPrice":87.5,"shippingFee":75}`))
	})
	mux.HandleFunc("POST /api/discounts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Not authorized, no token"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestGateway(t *testing.T, orders chan<- capturedRequest) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	remote := fakeStorefrontAPI(t, orders)
	cfg := &config.Config{API: &config.APIConfig{BaseURL: remote.URL}}

	client, err := api.New(cfg.API, remote.Client(), logger)
	require.NoError(t, err)

	store := memory.NewKVStore()
	publisher := notification.NewNoopPublisher(logger)

	sessions := impl.NewSessionService(impl.SessionServiceParams{API: client, Store: store, Inspector: auth.NewJWTInspector(), Logger: logger})
	notifications := impl.NewNotificationService(impl.NotificationServiceParams{Store: store, Config: cfg, Logger: logger})
	products := impl.NewProductService(impl.ProductServiceParams{API: client, Logger: logger})
	orderUC := impl.NewOrderService(impl.OrderServiceParams{API: client, Notifications: notifications, Publisher: publisher, Config: cfg, Logger: logger})
	reviews := impl.NewReviewService(impl.ReviewServiceParams{API: client, Logger: logger})
	discounts := impl.NewDiscountService(impl.DiscountServiceParams{
		API:           client,
		Notifications: notifications,
		Publisher:     publisher,
		QRCode:        qrcode.NewQRCodeService(256, "M"),
		Config:        cfg,
		Logger:        logger,
	})
	cart := impl.NewCartService(impl.CartServiceParams{Store: store, Orders: orderUC, Config: cfg, Logger: logger})

	params := router.RouterParams{
		SessionHandler: handler.NewSessionHandler(handler.SessionHandlerParams{SessionUC: sessions, Logger: logger}),
		StatusHandler: handler.NewStatusHandler(handler.StatusHandlerParams{
			ProductUC: products, OrderUC: orderUC, ReviewUC: reviews, DiscountUC: discounts,
		}),
		ProductHandler:      handler.NewProductHandler(handler.ProductHandlerParams{ProductUC: products}),
		CartHandler:         handler.NewCartHandler(handler.CartHandlerParams{CartUC: cart}),
		OrderHandler:        handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: orderUC}),
		ReviewHandler:       handler.NewReviewHandler(handler.ReviewHandlerParams{ReviewUC: reviews}),
		DiscountHandler:     handler.NewDiscountHandler(handler.DiscountHandlerParams{DiscountUC: discounts}),
		NotificationHandler: handler.NewNotificationHandler(handler.NotificationHandlerParams{NotificationUC: notifications}),
		SessionMiddleware:   middleware.NewSessionMiddleware(sessions, logger),
	}

	return NewEcho(cfg, logger, middleware.NewErrorMiddleware(logger), params)
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec.Code, env
}

func TestGateway_Health(t *testing.T) {
	e := newTestGateway(t, nil)

	code, env := doRequest(t, e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestGateway_UnknownRoute(t *testing.T) {
	e := newTestGateway(t, nil)

	code, env := doRequest(t, e, http.MethodGet, "/nowhere", "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}

func TestGateway_ProductsWithoutSession(t *testing.T) {
	e := newTestGateway(t, nil)

	code, env := doRequest(t, e, http.MethodGet, "/products?category=drinks", "")
	require.Equal(t, http.StatusOK, code)

	var products []struct {
		ID     string `json:"_id"`
		Banner string `json:"banner"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "none", products[0].Banner)
}

func TestGateway_CheckoutRequiresSession(t *testing.T) {
	e := newTestGateway(t, nil)

	code, env := doRequest(t, e, http.MethodPost, "/cart/checkout", "")

	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)
}

func TestGateway_LoginThenCheckout(t *testing.T) {
	orders := make(chan capturedRequest, 1)
	e := newTestGateway(t, orders)

	code, _ := doRequest(t, e, http.MethodPost, "/session/login", `{"email":"ada@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, code)

	code, env := doRequest(t, e, http.MethodPost, "/cart/items", `{"_id":"p1","name":"Tea","price":12.5}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"12.5"`, string(mustField(t, env.Data, "subtotal")))

	code, env = doRequest(t, e, http.MethodPost, "/cart/checkout", "")
	require.Equal(t, http.StatusCreated, code, env.Message)

	sent := <-orders
	assert.Equal(t, "Bearer opaque-token", sent.auth)
	assert.Equal(t, "u1", sent.body["userId"])
	assert.InDelta(t, 75.0, sent.body["shippingFee"], 0.001)
	assert.InDelta(t, 87.5, sent.body["totalPrice"], 0.001)

	code, env = doRequest(t, e, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `0`, string(mustField(t, env.Data, "count")))
}

func TestGateway_RemoteRejectionIsRelayed(t *testing.T) {
	e := newTestGateway(t, nil)

	code, _ := doRequest(t, e, http.MethodPost, "/session/login", `{"email":"ada@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, code)

	code, env := doRequest(t, e, http.MethodPost, "/discounts", `{"code":"save10","percentage":10,"expiryDate":"2999-01-01T00:00:00Z"}`)

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized, no token", env.Message)
}

func TestGateway_ApplyDiscountValidatesBody(t *testing.T) {
	e := newTestGateway(t, nil)

	code, env := doRequest(t, e, http.MethodPost, "/discounts/apply", `{"amount":100}`)

	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestGateway_NotificationsStartEmpty(t *testing.T) {
	e := newTestGateway(t, nil)

	code, env := doRequest(t, e, http.MethodGet, "/notifications", "")

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `0`, string(mustField(t, env.Data, "unread")))
}

func mustField(t *testing.T, data json.RawMessage, key string) json.RawMessage {
	t.Helper()

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	value, ok := fields[key]
	require.True(t, ok, "missing field %s", key)

	return value
}
