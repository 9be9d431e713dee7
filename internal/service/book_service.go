package service

import (
	"context"
	"errors"
	"fmt"

	"books_api/internal/mapper"
	"books_api/internal/model"
	"books_api/internal/repository"
)

// ErrBookNotFound is the single not-found condition for every book lookup and
// mutation; callers branch on it rather than on repository internals.
var ErrBookNotFound = errors.New("book not found")

// BookService defines operations for books
type BookService interface {
	FindAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	Create(ctx context.Context, req model.BookRequest) (*model.Book, error)
	Update(ctx context.Context, id int64, req model.BookRequest) error
	Delete(ctx context.Context, book *model.Book) error
}

type bookService struct {
	repo repository.BookRepository
}

// NewBookService creates a new BookService
func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) FindAll(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *bookService) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find book by ID: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

func (s *bookService) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	book, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to find book by title: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

func (s *bookService) Create(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	book := mapper.FromBookRequest(req)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book in repo: %w", err)
	}
	return book, nil
}

// Update overwrites every mutable field of an existing book, preserving its ID.
// Full replacement, not a merge: empty request fields still overwrite.
func (s *bookService) Update(ctx context.Context, id int64, req model.BookRequest) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find book for update: %w", err)
	}
	if existing == nil {
		return ErrBookNotFound
	}

	existing.Title = req.Title
	existing.Author = req.Author
	existing.Description = req.Description
	existing.ISBN = req.ISBN

	if err := s.repo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update book in repo: %w", err)
	}
	return nil
}

// Delete removes a book that the caller has already resolved via FindByID.
func (s *bookService) Delete(ctx context.Context, book *model.Book) error {
	if err := s.repo.Delete(ctx, book.ID); err != nil {
		return fmt.Errorf("failed to delete book in repo: %w", err)
	}
	return nil
}
