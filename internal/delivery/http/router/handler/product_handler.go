package handler

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
}

// ProductHandler exposes the catalog.
type ProductHandler struct {
	productUC usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{productUC: params.ProductUC}
}

// List handles GET /products. It refreshes the catalog, then applies at most one
// of the category, banner or q filters to the cached result.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productUC.FetchProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	switch {
	case c.QueryParam("category") != "":
		products = h.productUC.ByCategory(c.QueryParam("category"))
	case c.QueryParam("banner") != "":
		products = h.productUC.ByBanner(entity.Banner(c.QueryParam("banner")))
	case c.QueryParam("q") != "":
		products = h.productUC.Search(c.QueryParam("q"))
	}

	return response.Success(c, http.StatusOK, products, "")
}

// Categories handles GET /products/categories
func (h *ProductHandler) Categories(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.productUC.Categories(), "")
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productUC.FetchProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// Create handles POST /products
func (h *ProductHandler) Create(c echo.Context) error {
	var input entity.ProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid product input")
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), deliverycontext.GetSession(c), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created")
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c echo.Context) error {
	var input entity.ProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid product input")
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated")
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.productUC.DeleteProduct(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}
