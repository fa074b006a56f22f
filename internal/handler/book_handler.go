package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"book_manager/internal/model"
	"book_manager/internal/repository"
	"book_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// BookHandler handles book related requests
type BookHandler struct {
	service service.BookService
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(s service.BookService) *BookHandler {
	return &BookHandler{service: s}
}

// pageParams reads page and limit query parameters, defaulting to 1 and 10
// when absent or non-numeric so the pagination engine only ever sees
// positive integers.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

func (h *BookHandler) GetBooks(c *gin.Context) {
	page, limit := pageParams(c)
	filters := model.ListFilters{Q: c.Query("q")}

	books, err := h.service.ListBooks(c.Request.Context(), page, limit, filters)
	if err != nil {
		log.Printf("Error retrieving books: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving books!"})
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book ID"})
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found!"})
			return
		}
		log.Printf("Error retrieving book: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving book!"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required!"})
		return
	}

	if _, err := h.service.CreateBook(c.Request.Context(), req); err != nil {
		log.Printf("Error adding book: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding book!"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Book added successfully!"})
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book ID"})
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.service.UpdateBook(c.Request.Context(), bookID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found!"})
		case errors.Is(err, repository.ErrNoUpdateFields), errors.Is(err, service.ErrBookUpdateFailed):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update book!"})
		default:
			log.Printf("Error updating book: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating book!"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book updated successfully!"})
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid book ID"})
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), bookID); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Book not found!"})
		case errors.Is(err, service.ErrBookDeleteFailed):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to delete book!"})
		default:
			log.Printf("Error deleting book: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting book!"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully!"})
}

// RegisterBookRoutes registers book routes. Every book route requires an
// authenticated caller.
func (h *BookHandler) RegisterBookRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	bookRoutes := rg.Group("/books")
	bookRoutes.Use(authMW)
	{
		bookRoutes.GET("/getBooks", h.GetBooks)
		bookRoutes.GET("/getBook/:id", h.GetBook)
		bookRoutes.POST("/createBook", h.CreateBook)
		bookRoutes.PUT("/updateBook/:id", h.UpdateBook)
		bookRoutes.DELETE("/deleteBook/:id", h.DeleteBook)
	}
}
