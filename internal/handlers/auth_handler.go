package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-scheduler/internal/config"
	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
	"github.com/BruksfildServices01/field-scheduler/internal/validators"
)

type AuthHandler struct {
	db          *gorm.DB
	config      *config.Config
	emailDomain validators.DomainChecker
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, emailDomain validators.DomainChecker) *AuthHandler {
	if emailDomain == nil {
		emailDomain = validators.IsEmailDomainValid
	}
	return &AuthHandler{db: db, config: cfg, emailDomain: emailDomain}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username   string `json:"username" binding:"required,max=150"`
	Email      string `json:"email" binding:"required,max=254"`
	Password   string `json:"password" binding:"required,min=8"`
	FieldOwner bool   `json:"field_owner"`

	FirstName      string `json:"first_name" binding:"max=50"`
	LastName       string `json:"last_name" binding:"max=50"`
	Age            *int   `json:"age" binding:"omitempty,min=1,max=120"`
	Phone          string `json:"phone" binding:"max=15"`
	CompanyName    string `json:"company_name" binding:"max=100"`
	PreferredSport string `json:"preferred_sport" binding:"max=100"`
}

// Login accepts either the username or the email in Login.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailAddress(email) {
		httperr.BadRequest(c, "invalid_email", "Enter a valid email address.")
		return
	}
	if !h.emailDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create the account.")
		return
	}

	user := models.User{
		Username:       req.Username,
		Email:          email,
		PasswordHash:   string(hashed),
		FieldOwner:     req.FieldOwner,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Age:            req.Age,
		Phone:          req.Phone,
		CompanyName:    req.CompanyName,
		PreferredSport: req.PreferredSport,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "user_already_exists", "Username or email is already taken.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	login := validators.NormalizeEmail(req.Login)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("LOWER(username) = ? OR email = ?", login, login).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not sign in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials.")
		return
	}

	h.respondWithToken(c, http.StatusOK, &user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.config, user, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	c.JSON(status, AuthResponse{User: *user, Token: token})
}
