package service

import (
	"context"
	"errors"
	"fmt"

	"book_manager/internal/model"
	"book_manager/internal/pagination"
	"book_manager/internal/repository"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrBookUpdateFailed = errors.New("failed to update book")
	ErrBookDeleteFailed = errors.New("failed to delete book")
)

// BookService provides book management operations
type BookService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	ListBooks(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.Book], error)
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) error
	DeleteBook(ctx context.Context, id int64) error
}

type bookService struct {
	bookRepo repository.BookRepository
}

// NewBookService creates a new BookService
func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	book := &model.Book{
		Title:           req.Title,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book in repository: %w", err)
	}
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.Book], error) {
	books, err := s.bookRepo.FindAll(ctx, page, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// UpdateBook checks existence first so a missing book surfaces as not found
// rather than a zero-row update.
func (s *bookService) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) error {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find book for update: %w", err)
	}
	if book == nil {
		return ErrBookNotFound
	}

	affected, err := s.bookRepo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNoUpdateFields) {
			return err
		}
		return fmt.Errorf("failed to update book: %w", err)
	}
	if affected == 0 {
		return ErrBookUpdateFailed
	}
	return nil
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) error {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find book for deletion: %w", err)
	}
	if book == nil {
		return ErrBookNotFound
	}

	affected, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if affected == 0 {
		return ErrBookDeleteFailed
	}
	return nil
}
