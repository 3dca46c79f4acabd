package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/field-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/dto"
	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/field-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/field-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type FieldHandler struct {
	fields *infraRepo.FieldGormRepository
	cache  cache.Invalidator
	audit  *audit.Dispatcher
}

func NewFieldHandler(
	fields *infraRepo.FieldGormRepository,
	invalidator cache.Invalidator,
	audit *audit.Dispatcher,
) *FieldHandler {
	if invalidator == nil {
		invalidator = cache.Nop{}
	}
	return &FieldHandler{
		fields: fields,
		cache:  invalidator,
		audit:  audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateFieldRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Location     string          `json:"location" binding:"max=200"`
	Sport        string          `json:"sport" binding:"required,max=100"`
	Description  string          `json:"description"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`

	StartWorkingDay  int `json:"start_working_day" binding:"required"`
	StartWorkingHour int `json:"start_working_hour" binding:"required"`
	EndWorkingDay    int `json:"end_working_day" binding:"required"`
	EndWorkingHour   int `json:"end_working_hour" binding:"required"`
}

type UpdateFieldRequest struct {
	Name         *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Location     *string          `json:"location,omitempty" binding:"omitempty,max=200"`
	Sport        *string          `json:"sport,omitempty" binding:"omitempty,max=100"`
	Description  *string          `json:"description,omitempty"`
	PricePerHour *decimal.Decimal `json:"price_per_hour,omitempty"`

	StartWorkingDay  *int `json:"start_working_day,omitempty"`
	StartWorkingHour *int `json:"start_working_hour,omitempty"`
	EndWorkingDay    *int `json:"end_working_day,omitempty"`
	EndWorkingHour   *int `json:"end_working_hour,omitempty"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *FieldHandler) List(c *gin.Context) {
	list, err := h.fields.List(c.Request.Context(), c.Query("sport"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_fields", "Could not list fields.")
		return
	}
	httpresp.List(c, toFieldDTOs(list))
}

func (h *FieldHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	f, err := h.fields.GetField(c.Request.Context(), id)
	if err != nil {
		writeFieldError(c, err)
		return
	}
	httpresp.OK(c, dto.NewFieldDTO(f))
}

// ======================================================
// OWNER
// ======================================================

func (h *FieldHandler) ListMine(c *gin.Context) {
	list, err := h.fields.ListByOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_fields", "Could not list fields.")
		return
	}
	httpresp.List(c, toFieldDTOs(list))
}

func (h *FieldHandler) Create(c *gin.Context) {
	ownerID := middleware.UserID(c)

	var req CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	f := models.Field{
		FieldOwnerID:     ownerID,
		Name:             strings.TrimSpace(req.Name),
		Location:         req.Location,
		Sport:            strings.TrimSpace(req.Sport),
		Description:      req.Description,
		PricePerHour:     req.PricePerHour,
		StartWorkingDay:  req.StartWorkingDay,
		StartWorkingHour: req.StartWorkingHour,
		EndWorkingDay:    req.EndWorkingDay,
		EndWorkingHour:   req.EndWorkingHour,
	}

	if err := validateField(&f); err != nil {
		writeFieldError(c, err)
		return
	}

	if err := h.fields.Create(c.Request.Context(), &f); err != nil {
		httperr.Internal(c, "failed_to_create_field", "Could not create the field.")
		return
	}

	h.audit.Dispatch(audit.Event{
		FieldID:  f.ID,
		UserID:   &ownerID,
		Action:   "field_created",
		Entity:   "field",
		EntityID: uintPtr(f.ID),
	})

	httpresp.Created(c, dto.NewFieldDTO(&f))
}

func (h *FieldHandler) Update(c *gin.Context) {
	ownerID := middleware.UserID(c)
	ctx := c.Request.Context()

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	f, err := h.fields.GetOwnedField(ctx, id, ownerID)
	if err != nil {
		writeFieldError(c, err)
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		f.Location = *req.Location
	}
	if req.Sport != nil {
		f.Sport = strings.TrimSpace(*req.Sport)
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.PricePerHour != nil {
		f.PricePerHour = *req.PricePerHour
	}
	if req.StartWorkingDay != nil {
		f.StartWorkingDay = *req.StartWorkingDay
	}
	if req.StartWorkingHour != nil {
		f.StartWorkingHour = *req.StartWorkingHour
	}
	if req.EndWorkingDay != nil {
		f.EndWorkingDay = *req.EndWorkingDay
	}
	if req.EndWorkingHour != nil {
		f.EndWorkingHour = *req.EndWorkingHour
	}

	if err := validateField(f); err != nil {
		writeFieldError(c, err)
		return
	}

	if err := h.save(c, f, "field_updated"); err != nil {
		httperr.Internal(c, "failed_to_update_field", "Could not update the field.")
		return
	}

	httpresp.OK(c, dto.NewFieldDTO(f))
}

func (h *FieldHandler) Delete(c *gin.Context) {
	ownerID := middleware.UserID(c)
	ctx := c.Request.Context()

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.fields.DeleteCascade(ctx, id, ownerID); err != nil {
		writeFieldError(c, err)
		return
	}

	if err := h.cache.Invalidate(ctx, id); err != nil {
		log.Println("invalidate field cache:", err)
	}

	h.audit.Dispatch(audit.Event{
		FieldID:  id,
		UserID:   &ownerID,
		Action:   "field_deleted",
		Entity:   "field",
		EntityID: uintPtr(id),
	})

	httpresp.Message(c, "Field deleted.")
}

// save persists an owned field, drops its cached snapshot and audits the change.
func (h *FieldHandler) save(c *gin.Context, f *models.Field, action string) error {
	ctx := c.Request.Context()
	ownerID := middleware.UserID(c)

	if err := h.fields.Update(ctx, f); err != nil {
		return err
	}

	if err := h.cache.Invalidate(ctx, f.ID); err != nil {
		log.Println("invalidate field cache:", err)
	}

	h.audit.Dispatch(audit.Event{
		FieldID:  f.ID,
		UserID:   &ownerID,
		Action:   action,
		Entity:   "field",
		EntityID: uintPtr(f.ID),
	})

	return nil
}

// ======================================================
// HELPERS
// ======================================================

var (
	errInvalidStartDay  = httperr.ErrBusinessField("invalid_working_day", "start_working_day")
	errInvalidEndDay    = httperr.ErrBusinessField("invalid_working_day", "end_working_day")
	errInvalidStartHour = httperr.ErrBusinessField("invalid_working_hour", "start_working_hour")
	errInvalidEndHour   = httperr.ErrBusinessField("invalid_working_hour", "end_working_hour")
	errInvalidPrice     = httperr.ErrBusinessField("invalid_price", "price_per_hour")
)

// validateField checks each bound of the working window on its own. Start
// and end are not compared; an inverted window is stored as given.
func validateField(f *models.Field) error {
	switch {
	case !domain.IsValidDay(f.StartWorkingDay):
		return errInvalidStartDay
	case !domain.IsValidDay(f.EndWorkingDay):
		return errInvalidEndDay
	case !domain.IsBookableHour(f.StartWorkingHour):
		return errInvalidStartHour
	case !domain.IsBookableHour(f.EndWorkingHour):
		return errInvalidEndHour
	case f.PricePerHour.IsNegative():
		return errInvalidPrice
	}
	return nil
}

func writeFieldError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrFieldNotFound) {
		httperr.NotFound(c, "field_not_found", "Field not found.")
		return
	}

	if be, ok := httperr.AsBusiness(err); ok {
		httperr.WriteForm(c, http.StatusBadRequest, be, "Invalid value.", nil)
		return
	}

	httperr.Internal(c, "internal_error", "Unexpected error.")
}

func toFieldDTOs(list []models.Field) []dto.FieldDTO {
	out := make([]dto.FieldDTO, 0, len(list))
	for i := range list {
		out = append(out, dto.NewFieldDTO(&list[i]))
	}
	return out
}
