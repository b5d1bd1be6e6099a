package carts

import (
	"context"
	"errors"
	"time"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context) (Cart, error) {
	var c Cart
	err := r.DB.QueryRow(ctx, `
		INSERT INTO carts(id) VALUES ($1)
		RETURNING id, created_at, updated_at`, uuid.NewString(),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repo) Get(ctx context.Context, id string) (Cart, error) {
	var c Cart
	err := r.DB.QueryRow(ctx,
		`SELECT id, created_at, updated_at FROM carts WHERE id = $1`, id,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cart{}, ErrCartNotFound
	}
	if err != nil {
		return Cart{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT product_id, quantity FROM cart_items
		WHERE cart_id = $1 ORDER BY position`, id)
	if err != nil {
		return Cart{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return Cart{}, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

// SaveItems menulis ulang seluruh line item cart dalam satu transaksi,
// lalu mengembalikan cart yang sudah di-persist.
func (r *Repo) SaveItems(ctx context.Context, cartID string, items []LineItem) (Cart, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Cart{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	if err != nil {
		return Cart{}, err
	}
	if ct.RowsAffected() == 0 {
		return Cart{}, ErrCartNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return Cart{}, err
	}
	for i, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_items(cart_id, product_id, quantity, position)
			VALUES ($1, $2, $3, $4)`,
			cartID, it.ProductID, it.Quantity, i,
		); err != nil {
			return Cart{}, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Cart{}, err
	}
	return r.Get(ctx, cartID)
}

// GetExpanded me-resolve product tiap line item (read-side join).
// Product yang sudah dihapus muncul sebagai nil.
func (r *Repo) GetExpanded(ctx context.Context, id string) (ExpandedCart, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return ExpandedCart{}, err
	}
	out := ExpandedCart{ID: c.ID}

	rows, err := r.DB.Query(ctx, `
		SELECT ci.quantity,
		       p.id, p.title, p.description, p.price, p.stock,
		       p.category, p.status, p.thumbnails, p.created_at, p.updated_at
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position`, id)
	if err != nil {
		return ExpandedCart{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it ExpandedItem
			p  catalog.Product

			pid, title, desc, cat *string
			price                 *float64
			stock                 *int
			status                *bool
			thumbs                *[]string
			createdAt, updatedAt  *time.Time
		)
		if err := rows.Scan(&it.Quantity, &pid, &title, &desc, &price, &stock,
			&cat, &status, &thumbs, &createdAt, &updatedAt); err != nil {
			return ExpandedCart{}, err
		}
		if pid != nil {
			p = catalog.Product{
				ID: *pid, Title: *title, Description: *desc, Price: *price,
				Stock: *stock, Category: *cat, Status: *status,
				CreatedAt: *createdAt, UpdatedAt: *updatedAt,
			}
			if thumbs != nil {
				p.Thumbnails = *thumbs
			}
			it.Product = &p
		}
		out.Items = append(out.Items, it)
	}
	return out, rows.Err()
}
