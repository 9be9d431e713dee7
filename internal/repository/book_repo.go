package repository

import (
	"context"
	"errors"
	"fmt"

	"books_api/internal/model"

	"github.com/jackc/pgx/v5"
)

// BookRepository defines operations for book data
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db DB
}

// NewBookRepository creates a new BookRepository
func NewBookRepository(db DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new book into the database
func (r *bookRepository) Create(ctx context.Context, b *model.Book) error {
	sql := `INSERT INTO books (title, author, description, isbn)
            VALUES ($1, $2, $3, $4) RETURNING book_id`
	err := r.db.QueryRow(ctx, sql, b.Title, b.Author, b.Description, b.ISBN).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// FindAll retrieves all books
func (r *bookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	sql := `SELECT book_id, title, author, description, isbn FROM books ORDER BY book_id`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return books, nil
}

// FindByID retrieves a book by its ID
func (r *bookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	b := &model.Book{}
	sql := `SELECT book_id, title, author, description, isbn FROM books WHERE book_id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find book by ID: %w", err)
	}
	return b, nil
}

// FindByTitle retrieves a book by exact title match.
// Titles are not unique; on duplicates the first match wins, order unspecified.
func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	b := &model.Book{}
	sql := `SELECT book_id, title, author, description, isbn FROM books WHERE title = $1 LIMIT 1`
	err := r.db.QueryRow(ctx, sql, title).Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find book by title: %w", err)
	}
	return b, nil
}

// Update overwrites every mutable field of an existing book
func (r *bookRepository) Update(ctx context.Context, b *model.Book) error {
	sql := `UPDATE books SET title = $1, author = $2, description = $3, isbn = $4 WHERE book_id = $5`
	cmdTag, err := r.db.Exec(ctx, sql, b.Title, b.Author, b.Description, b.ISBN, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("book not found for update")
	}
	return nil
}

// Delete removes a book from the database
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM books WHERE book_id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("book not found for deletion")
	}
	return nil
}
