package service

import (
	"context"
	"testing"

	"book_manager/internal/model"
	"book_manager/internal/pagination"
	"book_manager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookRepo struct {
	createFn   func(ctx context.Context, book *model.Book) error
	findAllFn  func(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.Book], error)
	findByIDFn func(ctx context.Context, id int64) (*model.Book, error)
	updateFn   func(ctx context.Context, id int64, req model.UpdateBookRequest) (int64, error)
	deleteFn   func(ctx context.Context, id int64) (int64, error)
}

func (f *fakeBookRepo) Create(ctx context.Context, book *model.Book) error {
	return f.createFn(ctx, book)
}

func (f *fakeBookRepo) FindAll(ctx context.Context, page, limit int, filters model.ListFilters) (*pagination.Page[model.Book], error) {
	return f.findAllFn(ctx, page, limit, filters)
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeBookRepo) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (int64, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeBookRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return f.deleteFn(ctx, id)
}

func TestBookService_GetBook_NotFound(t *testing.T) {
	repo := &fakeBookRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return nil, nil
		},
	}
	svc := NewBookService(repo)

	_, err := svc.GetBook(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_UpdateBook_NotFound(t *testing.T) {
	repo := &fakeBookRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return nil, nil
		},
		updateFn: func(ctx context.Context, id int64, req model.UpdateBookRequest) (int64, error) {
			t.Fatal("Update must not be called for a missing book")
			return 0, nil
		},
	}
	svc := NewBookService(repo)

	err := svc.UpdateBook(context.Background(), 42, model.UpdateBookRequest{Title: "C"})

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_UpdateBook_NoFields(t *testing.T) {
	repo := &fakeBookRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id}, nil
		},
		updateFn: func(ctx context.Context, id int64, req model.UpdateBookRequest) (int64, error) {
			return 0, repository.ErrNoUpdateFields
		},
	}
	svc := NewBookService(repo)

	err := svc.UpdateBook(context.Background(), 1, model.UpdateBookRequest{})

	// validation failure, not a database write
	assert.ErrorIs(t, err, repository.ErrNoUpdateFields)
}

func TestBookService_UpdateBook_Success(t *testing.T) {
	var gotReq model.UpdateBookRequest
	repo := &fakeBookRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, Title: "A", Author: "B"}, nil
		},
		updateFn: func(ctx context.Context, id int64, req model.UpdateBookRequest) (int64, error) {
			gotReq = req
			return 1, nil
		},
	}
	svc := NewBookService(repo)

	err := svc.UpdateBook(context.Background(), 1, model.UpdateBookRequest{Title: "C"})

	require.NoError(t, err)
	assert.Equal(t, "C", gotReq.Title)
	assert.Empty(t, gotReq.Author)
}

func TestBookService_DeleteBook_NotFound(t *testing.T) {
	repo := &fakeBookRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return nil, nil
		},
		deleteFn: func(ctx context.Context, id int64) (int64, error) {
			t.Fatal("Delete must not be called for a missing book")
			return 0, nil
		},
	}
	svc := NewBookService(repo)

	err := svc.DeleteBook(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_DeleteBook_Success(t *testing.T) {
	repo := &fakeBookRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id}, nil
		},
		deleteFn: func(ctx context.Context, id int64) (int64, error) {
			return 1, nil
		},
	}
	svc := NewBookService(repo)

	assert.NoError(t, svc.DeleteBook(context.Background(), 1))
}

func TestBookService_CreateBook(t *testing.T) {
	repo := &fakeBookRepo{
		createFn: func(ctx context.Context, book *model.Book) error {
			book.ID = 5
			return nil
		},
	}
	svc := NewBookService(repo)

	book, err := svc.CreateBook(context.Background(), model.CreateBookRequest{
		Title: "A", Author: "B", PublicationYear: 2020,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), book.ID)
	assert.Equal(t, "A", book.Title)
}
