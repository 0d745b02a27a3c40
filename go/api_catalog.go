package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/freshharvest/harvest-api/internal/domains/catalog/application/types"
	catalogports "github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
)

// CatalogAPI serves the public product listing and the product admin screens.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /api/products
// Lists products filtered by name and price range, one page at a time
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	search, ok := bindOptionalString(c, "search")
	if !ok {
		return
	}
	minPrice, ok := bindOptionalDecimal(c, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := bindOptionalDecimal(c, "maxPrice")
	if !ok {
		return
	}
	page, ok := bindOptionalInt(c, "page")
	if !ok {
		return
	}
	pageSize, ok := bindOptionalInt(c, "pageSize")
	if !ok {
		return
	}
	result, err := api.service.ListProducts(c.Request.Context(), catalogtypes.SearchInput{
		Search:   search,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromProductPage(result))
}

// Get /api/products/:productId
// Find product by ID
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := bindProductID(c)
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		api.respondProductError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Post /api/admin/products
// Adds a product; the id is assigned by the catalog
func (api *CatalogAPI) AddProduct(c *gin.Context) {
	var payload cataloghttpmapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	input, fields := cataloghttpmapper.ToProductInput(payload)
	if len(fields) > 0 {
		responder.ValidationFailed(c, fields)
		return
	}
	product, err := api.service.AddProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(product))
}

// Put /api/admin/products/:productId
// Renames and reprices a product
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	id, ok := bindProductID(c)
	if !ok {
		return
	}
	var payload cataloghttpmapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	input, fields := cataloghttpmapper.ToProductInput(payload)
	if len(fields) > 0 {
		responder.ValidationFailed(c, fields)
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		api.respondProductError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Delete /api/admin/products/:productId
// Removes a product and returns what was deleted
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	id, ok := bindProductID(c)
	if !ok {
		return
	}
	product, err := api.service.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		api.respondProductError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

func (api *CatalogAPI) respondProductError(c *gin.Context, id int64, err error) {
	if errors.Is(err, catalogports.ErrNotFound) {
		responder.NotFound(c, "product", id)
		return
	}
	respondError(c, err)
}
