package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/acmeshop/checkout/internal/domain"
	"github.com/acmeshop/checkout/internal/port"
)

var (
	ErrNotFound = errors.New("order not found")
)

type orderRepository struct {
	db querier
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{db: pool}, nil
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

// CreateOrder reads the owner's basket items and persists them as an Order,
// all within one transaction. The basket itself is left intact; deleting it
// is a separate step of the checkout sequence.
func (r *orderRepository) CreateOrder(ctx context.Context, ownerID string, address domain.Address) (domain.Order, error) {
	var o domain.Order

	if ownerID == "" {
		return o, fmt.Errorf("ownerID is empty")
	}

	order, err := withTx(ctx, r.db, func(q querier) (domain.Order, error) {
		basketItems, err := selectBasketItems(ctx, q, ownerID)
		if err != nil {
			return o, fmt.Errorf("selectBasketItems: %w", err)
		}

		if len(basketItems) == 0 {
			return o, domain.ErrEmptyBasket
		}

		order := domain.Order{
			OwnerID: ownerID,
			Address: address,
			Items: lo.Map(basketItems, func(item domain.BasketItem, _ int) domain.OrderItem {
				return domain.OrderItem{
					ProductID: item.ProductID,
					Price:     item.Price,
					Quantity:  item.Quantity,
				}
			}),
		}

		err = q.QueryRow(ctx, `
			INSERT INTO orders (owner_id, street, city, state, country, postal_code)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			ownerID, address.Street, address.City, address.State, address.Country, address.PostalCode,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return o, fmt.Errorf("insert order: %w", err)
		}

		// TODO: batch with pgx.Batch if baskets grow beyond a handful of items
		for i, item := range order.Items {
			err := q.QueryRow(ctx, `
				INSERT INTO order_items (order_id, product_id, price_amount, price_currency, quantity)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING created_at`,
				order.ID, item.ProductID, item.Price.Amount, item.Price.Currency.String(), item.Quantity,
			).Scan(&order.Items[i].CreatedAt)
			if err != nil {
				if isUniqueViolation(err) {
					return o, fmt.Errorf("insert order item: %w", domain.ErrConflict)
				}
				return o, fmt.Errorf("insert order item: %w", err)
			}
		}

		return order, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyBasket) {
			return o, domain.ErrEmptyBasket
		}
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, fmt.Errorf("orderID is empty")
	}

	order, err := withTx(ctx, r.db, func(q querier) (domain.Order, error) {
		order, err := selectOrder(ctx, q, orderID)
		if err != nil {
			return o, fmt.Errorf("selectOrder: %w", err)
		}

		order.Items, err = selectOrderItems(ctx, q, orderID)
		if err != nil {
			return o, fmt.Errorf("selectOrderItems: %w", err)
		}

		return order, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return o, ErrNotFound
		}
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func selectOrder(ctx context.Context, q querier, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	err := q.QueryRow(ctx, `
		SELECT id, owner_id, street, city, state, country, postal_code, created_at
		FROM orders
		WHERE id = $1`, orderID,
	).Scan(&o.ID, &o.OwnerID,
		&o.Address.Street, &o.Address.City, &o.Address.State, &o.Address.Country, &o.Address.PostalCode,
		&o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, ErrNotFound
		}
		return o, fmt.Errorf("q.QueryRow: %w", err)
	}

	return o, nil
}

func selectOrderItems(ctx context.Context, q querier, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, price_amount, price_currency, quantity, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, product_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem

	for rows.Next() {
		var (
			item        domain.OrderItem
			amount      decimal.Decimal
			currencyStr string
		)

		if err := rows.Scan(&item.ProductID, &amount, &currencyStr, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(currencyStr)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyStr, err)
		}

		item.Price = domain.Money{Amount: amount, Currency: parsedCurrency}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}
