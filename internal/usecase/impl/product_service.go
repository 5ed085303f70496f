package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/usecase/slice"

	"go.uber.org/fx"
)

type productService struct {
	products *slice.Slice[entity.Product]
	remote   *resource[entity.Product]
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	API    service.APIClient
	Logger *slog.Logger
}

// NewProductService creates the product usecase with an empty catalog.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	products := slice.New[entity.Product]()

	return &productService{
		products: products,
		remote: &resource[entity.Product]{
			api:      params.API,
			state:    products,
			logger:   params.Logger.With(slog.String("slice", "products")),
			path:     "/api/products",
			plural:   "products",
			singular: "product",
			normalize: func(p *entity.Product) {
				p.Banner = p.Banner.Normalize()
			},
		},
	}
}

// FetchProducts is public; no credential is sent.
func (s *productService) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	return s.remote.list(ctx, "", nil)
}

func (s *productService) FetchProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.remote.get(ctx, "", id)
}

func (s *productService) CreateProduct(ctx context.Context, session *entity.Session, input *entity.ProductInput) (*entity.Product, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	input.Banner = input.Banner.Normalize()

	return s.remote.create(ctx, session.Token, input)
}

func (s *productService) UpdateProduct(ctx context.Context, session *entity.Session, id string, input *entity.ProductInput) (*entity.Product, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	input.Banner = input.Banner.Normalize()

	updated, err := s.remote.update(ctx, session.Token, id, input)
	if err != nil || updated != nil {
		return updated, err
	}

	patched := entity.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		Banner:      input.Banner,
		Description: input.Description,
	}
	s.products.Put(patched)

	return &patched, nil
}

func (s *productService) DeleteProduct(ctx context.Context, session *entity.Session, id string) error {
	if err := requireSession(session); err != nil {
		return err
	}

	return s.remote.remove(ctx, session.Token, id)
}

func (s *productService) Products() []entity.Product {
	return s.products.Items()
}

func (s *productService) Selected() (entity.Product, bool) {
	return s.products.Selected()
}

func (s *productService) ByCategory(category string) []entity.Product {
	return s.filter(func(p entity.Product) bool {
		return strings.EqualFold(p.Category, category)
	})
}

func (s *productService) ByBanner(banner entity.Banner) []entity.Product {
	banner = banner.Normalize()

	return s.filter(func(p entity.Product) bool {
		return p.Banner == banner
	})
}

func (s *productService) Search(query string) []entity.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.products.Items()
	}

	return s.filter(func(p entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), query)
	})
}

func (s *productService) Categories() []string {
	var categories []string
	for _, p := range s.products.Items() {
		if p.Category != "" && !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}

	return categories
}

func (s *productService) Status() slice.Status {
	return s.products.Status()
}

func (s *productService) filter(keep func(entity.Product) bool) []entity.Product {
	out := []entity.Product{}
	for _, p := range s.products.Items() {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}
