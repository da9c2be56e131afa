package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"restaurant-ops/models"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

type UserController struct {
	Store *store.Store
}

func NewUserController(st *store.Store) *UserController {
	return &UserController{Store: st}
}

// Register a new staff member
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"` // admin, staff, chef
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		Active:   true,
	}
	if err := uc.Store.InsertUser(&user); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login issues a JWT for valid credentials
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Store.GetUserByEmail(req.Email)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}
	if !user.Active {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("account is deactivated"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User logged in: %s", user.Email)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetAllUsers -> optional role filter
func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Store.ListUsers(c.Query("role"), c.Query("active") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", users)
}

// GetUserByID -> profile of one user
func (uc *UserController) GetUserByID(c *gin.Context) {
	id, err := paramID(c, "user_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Store.GetUser(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User detail", user)
}

// UpdateUser -> name/role changes by admin
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := paramID(c, "user_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Name *string `json:"name"`
		Role *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Store.GetUser(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if err := uc.Store.UpdateUser(user); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

// DeactivateUser -> users are never physically deleted
func (uc *UserController) DeactivateUser(c *gin.Context) {
	id, err := paramID(c, "user_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Store.GetUser(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	user.Active = false
	if err := uc.Store.UpdateUser(user); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("User %d deactivated", id)
	utils.RespondJSON(c, http.StatusOK, "User deactivated", gin.H{"user_id": id})
}
