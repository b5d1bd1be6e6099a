package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id, title, description, price, stock, category, status, thumbnails, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.Status, &p.Thumbnails, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List mengembalikan satu halaman product + total record yang match filter.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Product, int, error) {
	where := ""
	args := []any{}
	f := params.Filter()
	switch {
	case f.Category != nil:
		where = ` WHERE category = $1`
		args = append(args, *f.Category)
	case f.Status != nil:
		where = ` WHERE status = $1`
		args = append(args, *f.Status)
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := ` ORDER BY created_at`
	if params.Sort != "" {
		if params.Sort == "asc" {
			order = ` ORDER BY price ASC`
		} else {
			order = ` ORDER BY price DESC`
		}
	}
	q := fmt.Sprintf(`SELECT %s FROM products%s%s LIMIT $%d OFFSET $%d`,
		productColumns, where, order, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.offset())

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// ListAll = snapshot penuh untuk broadcast, tanpa filter dan pagination.
func (r *Repo) ListAll(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	id := uuid.NewString()
	p, err := scanProduct(r.DB.QueryRow(ctx, `
		INSERT INTO products(id, title, description, price, stock, category, status, thumbnails)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		id, in.Title, in.Description, in.Price, in.Stock, in.Category, in.Status, in.Thumbnails))
	return p, err
}

func (r *Repo) Update(ctx context.Context, id string, in ProductUpdate) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	set := ""
	args := []any{id}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		args = append(args, v)
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.Stock != nil {
		add("stock", *in.Stock)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}
	if in.Thumbnails != nil {
		add("thumbnails", *in.Thumbnails)
	}
	if set == "" {
		return r.Get(ctx, id)
	}
	set += ", updated_at = now()"

	p, err := scanProduct(r.DB.QueryRow(ctx,
		`UPDATE products SET `+set+` WHERE id = $1 RETURNING `+productColumns, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
