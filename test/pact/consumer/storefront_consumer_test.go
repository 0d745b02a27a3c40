//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/freshharvest/harvest-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

type productPage struct {
	Items      []productPayload `json:"items"`
	TotalItems int              `json:"totalItems"`
}

type orderPayload struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
}

type trackingPayload struct {
	Order orderPayload `json:"order"`
	Steps []struct {
		Status  string `json:"status"`
		Reached bool   `json:"reached"`
	} `json:"steps"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	orderMatcher := matchers.Map{
		"id":          matchers.Like("2b1f0c2e-3c55-4a8e-9a53-8a1c3f2d9e10"),
		"productId":   matchers.Like(pacttest.ApplesID),
		"productName": matchers.Like("Apples"),
		"quantity":    matchers.Like(25),
		"status":      matchers.Term("Pending", "Pending|In Progress|Delivered"),
		"createdAt":   matchers.Like("2024-06-12T10:00:00Z"),
	}

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a catalog search for apples").
		WithRequest("GET", "/api/products", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("search", matchers.S("apple"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"items": matchers.EachLike(matchers.Map{
					"id":    matchers.Like(pacttest.ApplesID),
					"name":  matchers.Like("Apples"),
					"price": matchers.Like(120),
				}, 1),
				"totalItems": matchers.Like(1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a bulk order for apples").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderRequest())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a tracking lookup for an existing order").
		WithRequest("GET", "/api/orders/"+pacttest.ExistingOrderID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"order": matchers.Map{
					"id":     matchers.S(pacttest.ExistingOrderID),
					"status": matchers.Term("Pending", "Pending|In Progress|Delivered"),
				},
				"steps": matchers.EachLike(matchers.Map{
					"status":  matchers.Like("Pending"),
					"reached": matchers.Like(true),
				}, 3),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a tracking lookup for a missing order").
		WithRequest("GET", "/api/orders/"+pacttest.MissingOrderID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		page, err := client.SearchProducts(ctx, "apple")
		if err != nil {
			return fmt.Errorf("search products: %w", err)
		}
		if len(page.Items) == 0 {
			return fmt.Errorf("expected at least one product")
		}

		order, err := client.PlaceOrder(ctx, pacttest.ExampleOrderRequest())
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order.ID == "" || order.Status != "Pending" {
			return fmt.Errorf("unexpected order %+v", order)
		}

		tracking, err := client.Track(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("track order: %w", err)
		}
		if tracking.Order.ID != pacttest.ExistingOrderID || len(tracking.Steps) == 0 {
			return fmt.Errorf("unexpected tracking view %+v", tracking)
		}

		if _, err := client.Track(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %s", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}
		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *storefrontClient) SearchProducts(ctx context.Context, search string) (*productPage, error) {
	var page productPage
	if err := c.do(ctx, http.MethodGet, "/api/products?search="+search, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *storefrontClient) PlaceOrder(ctx context.Context, order map[string]any) (*orderPayload, error) {
	var created orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *storefrontClient) Track(ctx context.Context, id string) (*trackingPayload, error) {
	var view trackingPayload
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *storefrontClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
