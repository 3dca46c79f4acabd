package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/field-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/field-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

type MeHandler struct {
	db    *gorm.DB
	users *infraRepo.UserGormRepository
	cache cache.Invalidator
}

func NewMeHandler(
	db *gorm.DB,
	users *infraRepo.UserGormRepository,
	invalidator cache.Invalidator,
) *MeHandler {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &MeHandler{db: db, users: users, cache: invalidator}
}

type UpdateMeRequest struct {
	FirstName      *string `json:"first_name,omitempty" binding:"omitempty,max=50"`
	LastName       *string `json:"last_name,omitempty" binding:"omitempty,max=50"`
	Age            *int    `json:"age,omitempty" binding:"omitempty,min=1,max=120"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=15"`
	CompanyName    *string `json:"company_name,omitempty" binding:"omitempty,max=100"`
	PreferredSport *string `json:"preferred_sport,omitempty" binding:"omitempty,max=100"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	httpresp.OK(c, user)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.PreferredSport != nil {
		user.PreferredSport = *req.PreferredSport
	}

	if err := h.db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update the profile.")
		return
	}

	httpresp.OK(c, user)
}

// DeleteMe removes the account together with its fields and every
// reservation that pointed at either.
func (h *MeHandler) DeleteMe(c *gin.Context) {
	ctx := c.Request.Context()

	fieldIDs, err := h.users.DeleteCascade(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, infraRepo.ErrUserNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_user", "Could not delete the account.")
		return
	}

	for _, id := range fieldIDs {
		if err := h.cache.Invalidate(ctx, id); err != nil {
			log.Println("invalidate field cache:", err)
		}
	}

	httpresp.Message(c, "Account deleted.")
}

func (h *MeHandler) loadUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		First(&user, middleware.UserID(c)).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load the profile.")
		return nil, false
	}
	return &user, true
}
