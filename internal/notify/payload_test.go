package notify_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/acmeshop/checkout/internal/domain"
	"github.com/acmeshop/checkout/internal/notify"
)

func TestBuildPayload(t *testing.T) {
	order := testOrder(t)

	payload := notify.BuildPayload(order)

	require.NotEqual(t, uuid.Nil, payload.ID)
	assert.Equal(t, order.ID, payload.OrderID)
	assert.Equal(t, order.Address, payload.Address)

	require.Len(t, payload.Items, len(order.Items))
	for i, item := range payload.Items {
		assert.Equal(t, order.Items[i].ProductID, item.ProductID)
		assert.Equal(t, order.Items[i].Quantity, item.Quantity)
	}

	// 2 x 10.00 + 3 x 2.50
	assert.True(t, payload.Total.Equal(decimal.RequireFromString("27.50")),
		"total = %s", payload.Total)

	assert.Equal(t, time.UTC, payload.CreatedAt.Location())
	assert.WithinDuration(t, time.Now(), payload.CreatedAt, time.Minute)
}

func TestBuildPayloadPerSink(t *testing.T) {
	order := testOrder(t)

	first := notify.BuildPayload(order)
	second := notify.BuildPayload(order)

	// Each sink gets its own message identity over the same order data.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.Address, second.Address)
	assert.Equal(t, first.Items, second.Items)
	assert.True(t, first.Total.Equal(second.Total))
}

func testOrder(t *testing.T) domain.Order {
	t.Helper()

	return domain.Order{
		ID:      uuid.New(),
		OwnerID: "buyer-1",
		Address: domain.Address{
			Street:     "123 Main St.",
			City:       "Kent",
			State:      "OH",
			Country:    "United States",
			PostalCode: "44240",
		},
		Items: []domain.OrderItem{
			{
				ProductID: uuid.New(),
				Price:     domain.Money{Amount: decimal.RequireFromString("10.00"), Currency: currency.USD},
				Quantity:  2,
			},
			{
				ProductID: uuid.New(),
				Price:     domain.Money{Amount: decimal.RequireFromString("2.50"), Currency: currency.USD},
				Quantity:  3,
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}
