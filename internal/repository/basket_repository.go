package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/acmeshop/checkout/internal/domain"
	"github.com/acmeshop/checkout/internal/port"
)

type basketRepository struct {
	db querier
}

func NewBasket(pool *pgxpool.Pool) (port.BasketRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &basketRepository{db: pool}, nil
}

func NewBasketWithTx(tx pgx.Tx) port.BasketRepository {
	return &basketRepository{db: tx}
}

func (r *basketRepository) GetBasket(ctx context.Context, ownerID string) (domain.Basket, error) {
	var b domain.Basket

	if ownerID == "" {
		return b, fmt.Errorf("ownerID is empty")
	}

	items, err := selectBasketItems(ctx, r.db, ownerID)
	if err != nil {
		return b, fmt.Errorf("selectBasketItems: %w", err)
	}

	return domain.Basket{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func (r *basketRepository) AddItem(ctx context.Context, ownerID string, item domain.BasketItem) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if item.ProductID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO basket_items (owner_id, product_id, price_amount, price_currency, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id, product_id)
		DO UPDATE SET quantity       = basket_items.quantity + EXCLUDED.quantity,
		              price_amount   = EXCLUDED.price_amount,
		              price_currency = EXCLUDED.price_currency`,
		ownerID, item.ProductID, item.Price.Amount, item.Price.Currency.String(), item.Quantity)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func (r *basketRepository) DeleteBasket(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if _, err := r.db.Exec(ctx,
		`DELETE FROM basket_items WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

// selectBasketItems is shared with the order repository which reads the basket
// inside its checkout transaction.
func selectBasketItems(ctx context.Context, q querier, ownerID string) ([]domain.BasketItem, error) {
	rows, err := q.Query(ctx, `
		SELECT product_id, price_amount, price_currency, quantity, created_at
		FROM basket_items
		WHERE owner_id = $1
		ORDER BY created_at, product_id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.BasketItem

	for rows.Next() {
		var (
			item        domain.BasketItem
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
