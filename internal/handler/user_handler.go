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

// UserHandler handles registration, login and user management requests
type UserHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService service.AuthService, userService service.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required!"})
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A user with these credentials already exists!"})
			return
		}
		log.Printf("Error during registration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during registration!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully registered!"})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required!"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "The email or the password are not correct!"})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred during login!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	page, limit := pageParams(c)
	filters := model.ListFilters{Q: c.Query("q")}

	users, err := h.userService.ListUsers(c.Request.Context(), page, limit, filters)
	if err != nil {
		log.Printf("Error retrieving users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while retrieving users!"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No user with that ID was found!"})
			return
		}
		log.Printf("Error retrieving user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while retrieving the user!"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := h.userService.UpdateUser(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoUpdateFields), errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User update failed!"})
		default:
			log.Printf("Error updating user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while updating the user!"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully!"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User deletion failed!"})
			return
		}
		log.Printf("Error deleting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while deleting the user!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully!"})
}

// RegisterUserRoutes registers user routes. Registration and login are
// public; reading a single user needs authentication; listing, updating and
// deleting users are admin-only.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	userRoutes := rg.Group("/users")
	{
		userRoutes.POST("/register", h.Register)
		userRoutes.POST("/login", h.Login)
	}

	authedRoutes := rg.Group("/users")
	authedRoutes.Use(authMW)
	{
		authedRoutes.GET("/getUser/:id", h.GetUser)
	}

	adminRoutes := rg.Group("/users")
	adminRoutes.Use(authMW, adminMW)
	{
		adminRoutes.GET("/getUsers", h.GetUsers)
		adminRoutes.PUT("/updateUser/:id", h.UpdateUser)
		adminRoutes.DELETE("/deleteUser/:id", h.DeleteUser)
	}
}
