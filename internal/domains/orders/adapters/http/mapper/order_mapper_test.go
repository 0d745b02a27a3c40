package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

func TestCreateOrder_AcceptsNumbersAndStrings(t *testing.T) {
	var payload CreateOrder
	require.NoError(t, json.Unmarshal([]byte(`{
		"productId": 1,
		"quantity": "25",
		"customerName": "John Doe",
		"contact": "9876543210",
		"email": null,
		"address": "123 Main St"
	}`), &payload))

	input := ToCreateOrderInput(payload)
	require.Equal(t, "1", input.ProductID)
	require.Equal(t, "25", input.Quantity)
	require.Empty(t, input.Email)

	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 2.5}`), &payload))
	require.Equal(t, LooseString("2.5"), payload.Quantity)

	require.Error(t, json.Unmarshal([]byte(`{"quantity": true}`), &payload))
}

func TestFromDomainOrder(t *testing.T) {
	created := time.Date(2023, 4, 18, 10, 30, 0, 0, time.UTC)
	order, err := ordersdomain.NewOrder("abc123", ordersdomain.Details{
		ProductID: 1, Quantity: 25, CustomerName: "John Doe", Contact: "9876543210", Address: "123 Main St",
	}, ordersdomain.ProductSnapshot{Name: "Apples", UnitPrice: decimal.NewFromInt(120)}, created, 0)
	require.NoError(t, err)

	raw, err := json.Marshal(FromDomainOrder(order))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "abc123",
		"productId": 1,
		"productName": "Apples",
		"unitPrice": 120,
		"quantity": 25,
		"subtotal": 3000,
		"customerName": "John Doe",
		"contact": "9876543210",
		"address": "123 Main St",
		"status": "Pending",
		"createdAt": "2023-04-18T10:30:00Z"
	}`, string(raw))
}
