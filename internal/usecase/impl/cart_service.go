package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const defaultShippingFee = 75

type cartService struct {
	mu          sync.RWMutex
	items       []entity.CartItem
	store       repository.KeyValueStore
	orders      usecase.OrderUsecase
	shippingFee decimal.Decimal
	placed      func(*entity.Order)
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	Ctx    context.Context `optional:"true"`
	Store  repository.KeyValueStore
	Orders usecase.OrderUsecase
	Config *config.Config
	Logger *slog.Logger
}

// checkoutLine and checkoutPayload are the order-creation body. Numbers are sent as
// JSON numbers whatever shape the screen handed in.
type checkoutLine struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type checkoutPayload struct {
	UserID          string         `json:"userId"`
	Items           []checkoutLine `json:"items"`
	ShippingFee     float64        `json:"shippingFee"`
	TotalPrice      float64        `json:"totalPrice"`
	ShippingAddress string         `json:"shippingAddress,omitempty"`
}

// NewCartService creates the cart usecase rehydrated from the store, so the first
// Add or Remove never overwrites a persisted cart.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	fee := decimal.NewFromInt(defaultShippingFee)
	if params.Config != nil && params.Config.Checkout != nil && params.Config.Checkout.DefaultShippingFee > 0 {
		fee = decimal.NewFromFloat(params.Config.Checkout.DefaultShippingFee)
	}

	s := &cartService{
		store:       params.Store,
		orders:      params.Orders,
		shippingFee: fee,
		logger:      params.Logger,
	}

	ctx := params.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	s.Load(ctx)

	return s
}

func (s *cartService) Load(ctx context.Context) []entity.CartItem {
	items := []entity.CartItem{}
	if _, err := repository.GetJSON(ctx, s.store, repository.KeyCart, &items); err != nil {
		s.logger.Error("Failed to load cart", slog.Any("error", err))
		items = []entity.CartItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items

	return slices.Clone(s.items)
}

func (s *cartService) Add(ctx context.Context, p entity.Product) []entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, entity.NewCartItem(p))
	s.persist(ctx)

	return slices.Clone(s.items)
}

func (s *cartService) Remove(ctx context.Context, productID string) []entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(item entity.CartItem) bool {
		return item.ID == productID
	})
	s.persist(ctx)

	return slices.Clone(s.items)
}

// persist writes the whole cart. Callers hold s.mu.
func (s *cartService) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []entity.CartItem{}
	}
	if err := repository.SetJSON(ctx, s.store, repository.KeyCart, items); err != nil {
		s.logger.Error("Failed to persist cart", slog.Any("error", err))
	}
}

func (s *cartService) Checkout(ctx context.Context, session *entity.Session, input *entity.CheckoutInput) (*entity.Order, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if session.UserID == "" {
		return nil, domainerrors.ErrMissingUserID
	}

	if input == nil {
		input = &entity.CheckoutInput{}
	}
	lines := input.Items
	if len(lines) == 0 {
		lines = s.cartLines()
	}
	if len(lines) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}
	if err := validateInput(&entity.CheckoutInput{Items: lines}); err != nil {
		return nil, err
	}

	fee := s.shippingFee
	if input.ShippingFee != nil {
		fee = *input.ShippingFee
	}

	payload := checkoutPayload{
		UserID:          session.UserID,
		Items:           make([]checkoutLine, 0, len(lines)),
		ShippingAddress: input.ShippingAddress,
	}
	subtotal := decimal.Zero
	for _, line := range lines {
		qty := int(line.Quantity)
		price, _ := line.Price.Float64()
		payload.Items = append(payload.Items, checkoutLine{
			Product:  line.ProductID,
			Name:     line.Name,
			Price:    price,
			Quantity: qty,
		})
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	payload.ShippingFee, _ = fee.Float64()
	payload.TotalPrice, _ = subtotal.Add(fee).Round(2).Float64()

	order, err := s.orders.PlaceOrder(ctx, session, payload)
	if err != nil {
		return nil, err
	}

	// Only the in-memory cart is emptied; the stored copy is overwritten on the next Add or Remove.
	s.mu.Lock()
	s.items = nil
	placed := s.placed
	s.mu.Unlock()

	if placed != nil {
		placed(order)
	}

	return order, nil
}

func (s *cartService) OnOrderPlaced(fn func(*entity.Order)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.placed = fn
}

func (s *cartService) cartLines() []entity.CheckoutItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]entity.CheckoutItem, 0, len(s.items))
	for _, item := range s.items {
		lines = append(lines, entity.CheckoutItem{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  entity.Quantity(item.Quantity),
		})
	}

	return lines
}

func (s *cartService) Items() []entity.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

func (s *cartService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *cartService) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}

	return total
}

func (s *cartService) Total(shippingFee decimal.Decimal) decimal.Decimal {
	return s.Subtotal().Add(shippingFee)
}
