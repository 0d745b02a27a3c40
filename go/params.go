package storefrontserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// bindProductID reads a positive product id from the path.
func bindProductID(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "productId", runtime.ParamLocationPath, c.Param("productId"), &id)
	if err != nil || id <= 0 {
		respondFieldError(c, "productId", "must be a positive integer")
		return 0, false
	}
	return id, true
}

// bindOrderID reads the opaque order id from the path.
func bindOrderID(c *gin.Context) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithLocation("simple", false, "orderId", runtime.ParamLocationPath, c.Param("orderId"), &id)
	id = strings.TrimSpace(id)
	if err != nil || id == "" {
		respondFieldError(c, "orderId", "is required")
		return "", false
	}
	return id, true
}

// bindOptionalInt binds an optional integer query parameter. Zero is returned when absent.
func bindOptionalInt(c *gin.Context, name string) (int, bool) {
	var value *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		respondFieldError(c, name, "must be an integer")
		return 0, false
	}
	if value == nil {
		return 0, true
	}
	return *value, true
}

func bindOptionalString(c *gin.Context, name string) (string, bool) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		respondFieldError(c, name, "is malformed")
		return "", false
	}
	if value == nil {
		return "", true
	}
	return strings.TrimSpace(*value), true
}

// bindOptionalDecimal parses an optional money query parameter such as minPrice.
func bindOptionalDecimal(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw, ok := bindOptionalString(c, name)
	if !ok {
		return nil, false
	}
	if raw == "" {
		return nil, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		respondFieldError(c, name, "must be a number")
		return nil, false
	}
	return &value, true
}

// bindStringList reads a repeatable query parameter (?status=a&status=b).
// Comma-separated values are split as well.
func bindStringList(c *gin.Context, name string) ([]string, bool) {
	var values *[]string
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &values); err != nil {
		respondFieldError(c, name, "is malformed")
		return nil, false
	}
	if values == nil {
		return nil, true
	}
	out := make([]string, 0, len(*values))
	for _, value := range *values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out, true
}
