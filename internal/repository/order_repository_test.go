package repository_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"

	"github.com/acmeshop/checkout/internal/domain"
	"github.com/acmeshop/checkout/internal/port"
	"github.com/acmeshop/checkout/internal/repository"
)

type orderRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	orders    port.OrderRepository
	baskets   port.BasketRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.orders, err = repository.NewOrder(suite.pool)
	suite.NoError(err)

	suite.baskets, err = repository.NewBasket(suite.pool)
	suite.NoError(err)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *orderRepositorySuite) TestCreateOrder() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		ownerIDFunc func() string
		basketItems []domain.BasketItem
		wantError   string
	}{
		{
			name:        "basket with two items: ok",
			ownerIDFunc: gofakeit.Username,
			basketItems: []domain.BasketItem{fakeBasketItem(), fakeBasketItem()},
		},
		{
			name:        "basket with one item: ok",
			ownerIDFunc: gofakeit.Username,
			basketItems: []domain.BasketItem{fakeBasketItem()},
		},
		{
			name:        "empty basket: fail",
			ownerIDFunc: gofakeit.Username,
			wantError:   "basket is empty",
		},
		{
			name:        "empty owner ID: fail",
			ownerIDFunc: func() string { return "" },
			wantError:   "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			ownerID := tt.ownerIDFunc()
			address := fakeAddress()

			for _, item := range tt.basketItems {
				require.NoError(t, suite.baskets.AddItem(ctx, ownerID, item))
			}

			order, err := suite.orders.CreateOrder(ctx, ownerID, address)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			require.NotEqual(t, uuid.Nil, order.ID)
			assert.Equal(t, ownerID, order.OwnerID)
			assert.Equal(t, address, order.Address)
			assert.WithinDuration(t, time.Now(), order.CreatedAt, time.Minute)

			wantItems := lo.Map(tt.basketItems, func(item domain.BasketItem, _ int) domain.OrderItem {
				return domain.OrderItem{
					ProductID: item.ProductID,
					Price:     item.Price,
					Quantity:  item.Quantity,
				}
			})
			assertOrderItems(t, wantItems, order.Items)

			// Round-trips through storage.
			stored, err := suite.orders.GetOrder(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, order.ID, stored.ID)
			assert.Equal(t, address, stored.Address)
			assertOrderItems(t, wantItems, stored.Items)

			// Creating the order does not consume the basket rows.
			basket, err := suite.baskets.GetBasket(ctx, ownerID)
			require.NoError(t, err)
			assert.Len(t, basket.Items, len(tt.basketItems))
		})
	}
}

func (suite *orderRepositorySuite) TestCreateOrderTotal() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.Username()

	item := fakeBasketItem()
	item.Price.Amount = decimal.RequireFromString("10.00")
	item.Quantity = 2
	require.NoError(t, suite.baskets.AddItem(ctx, ownerID, item))

	order, err := suite.orders.CreateOrder(ctx, ownerID, fakeAddress())
	require.NoError(t, err)

	assert.True(t, order.Total().Amount.Equal(decimal.RequireFromString("20.00")),
		"total = %s", order.Total().Amount)
}

func (suite *orderRepositorySuite) TestGetOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	_, err := suite.orders.GetOrder(ctx, uuid.MustParse(gofakeit.UUID()))
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = suite.orders.GetOrder(ctx, uuid.Nil)
	require.EqualError(t, err, "orderID is empty")
}

func (suite *orderRepositorySuite) deleteAll() {
	ctx := suite.T().Context()

	_, err := suite.pool.Exec(ctx, "TRUNCATE basket_items, order_items, orders")
	suite.NoError(err)
}

func fakeAddress() domain.Address {
	return domain.Address{
		Street:     gofakeit.Street(),
		City:       gofakeit.City(),
		State:      gofakeit.StateAbr(),
		Country:    gofakeit.Country(),
		PostalCode: gofakeit.Zip(),
	}
}

func assertOrderItems(t *testing.T, expected, actual []domain.OrderItem) {
	t.Helper()

	opts := append(cmpMoneyOptions(),
		cmpopts.IgnoreFields(domain.OrderItem{}, "CreatedAt"),
		cmpopts.SortSlices(func(a, b domain.OrderItem) bool {
			return a.ProductID.String() < b.ProductID.String()
		}),
	)

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
