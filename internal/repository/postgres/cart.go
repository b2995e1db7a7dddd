package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/repository"
)

type cartRepository struct {
	db DBTX
}

func NewCartRepository(db DBTX) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *domain.Cart) error {
	query := `INSERT INTO carts (user_id, cart_name, cart_status, total_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`
	now := time.Now().UTC()
	cart.CreatedOn = now
	cart.UpdatedOn = now
	if cart.Status == "" {
		cart.Status = "open"
	}
	return r.db.QueryRowContext(ctx, query,
		cart.UserID, cart.Name, cart.Status, cart.TotalCents, now,
	).Scan(&cart.ID)
}

func (r *cartRepository) GetCart(ctx context.Context, id int32) (*domain.Cart, error) {
	query := `SELECT id, user_id, COALESCE(cart_name, ''), cart_status, total_cents, created_on, updated_on
	          FROM carts WHERE id = $1`
	var cart domain.Cart
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cart.ID, &cart.UserID, &cart.Name, &cart.Status, &cart.TotalCents, &cart.CreatedOn, &cart.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: cart %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func (r *cartRepository) UpdateTotal(ctx context.Context, cartID int32, totalCents int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE carts SET total_cents = $2, updated_on = $3 WHERE id = $1`,
		cartID, totalCents, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: cart %d", domain.ErrNotFound, cartID)
	}
	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, cartID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	return err
}

const cartItemColumns = `id, cart_id, equipment_id, price_cents_at_addition, price_cents_if_changed,
	rental_rate, rental_length, quantity, created_on, updated_on`

func (r *cartRepository) CreateItem(ctx context.Context, item *domain.CartItem) error {
	query := `INSERT INTO cart_items (cart_id, equipment_id, price_cents_at_addition,
	              price_cents_if_changed, rental_rate, rental_length, quantity, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`
	now := time.Now().UTC()
	item.CreatedOn = now
	item.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		item.CartID, item.EquipmentID, item.PriceCentsAtAddition, item.PriceCentsIfChanged,
		item.RentalRate, item.RentalLength, item.Quantity, now,
	).Scan(&item.ID)
}

func (r *cartRepository) GetItem(ctx context.Context, id int32) (*domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE id = $1`
	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.CartID, &item.EquipmentID, &item.PriceCentsAtAddition, &item.PriceCentsIfChanged,
		&item.RentalRate, &item.RentalLength, &item.Quantity, &item.CreatedOn, &item.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: cart item %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) ListItems(ctx context.Context, cartID int32) ([]domain.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.EquipmentID, &item.PriceCentsAtAddition, &item.PriceCentsIfChanged,
			&item.RentalRate, &item.RentalLength, &item.Quantity, &item.CreatedOn, &item.UpdatedOn,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *cartRepository) SetPriceOverride(ctx context.Context, itemID int32, priceCents int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET price_cents_if_changed = $2, updated_on = $3 WHERE id = $1`,
		itemID, priceCents, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: cart item %d", domain.ErrNotFound, itemID)
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	return err
}
