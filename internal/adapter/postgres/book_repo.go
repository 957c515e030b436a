package postgres

import (
	"context"
	"time"

	"libris/internal/domain"
)

// AddBook inserts a catalog record.
func (d *DB) AddBook(ctx context.Context, title, author string, copies int, status domain.Availability) (*domain.Book, error) {
	var b domain.Book
	var statusStr string
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO books (title, author, copies, status, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id, title, author, copies, status, created_at",
		title, author, copies, string(status), time.Now(),
	).Scan(&b.ID, &b.Title, &b.Author, &b.Copies, &statusStr, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Status, err = domain.ParseAvailability(statusStr)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBooks returns the full catalog.
func (d *DB) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, title, author, copies, status, created_at FROM books",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		var statusStr string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Copies, &statusStr, &b.CreatedAt); err != nil {
			return nil, err
		}
		if b.Status, err = domain.ParseAvailability(statusStr); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// DeleteBook deletes by id. Absent ids delete zero rows, which is fine.
func (d *DB) DeleteBook(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM books WHERE id = $1", id)
	return err
}
