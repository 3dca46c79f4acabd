package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/field-scheduler/internal/dto"
	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
)

type WorkingWindowRequest struct {
	StartWorkingDay  int `json:"start_working_day" binding:"required"`
	StartWorkingHour int `json:"start_working_hour" binding:"required"`
	EndWorkingDay    int `json:"end_working_day" binding:"required"`
	EndWorkingHour   int `json:"end_working_hour" binding:"required"`
}

func (h *FieldHandler) GetWorkingWindow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	f, err := h.fields.GetOwnedField(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		writeFieldError(c, err)
		return
	}

	httpresp.OK(c, dto.NewFieldDTO(f).WorkingWindow)
}

// PutWorkingWindow replaces all four bounds at once.
func (h *FieldHandler) PutWorkingWindow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	f, err := h.fields.GetOwnedField(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		writeFieldError(c, err)
		return
	}

	var req WorkingWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	f.StartWorkingDay = req.StartWorkingDay
	f.StartWorkingHour = req.StartWorkingHour
	f.EndWorkingDay = req.EndWorkingDay
	f.EndWorkingHour = req.EndWorkingHour

	if err := validateField(f); err != nil {
		writeFieldError(c, err)
		return
	}

	if err := h.save(c, f, "field_updated"); err != nil {
		httperr.Internal(c, "failed_to_update_field", "Could not update the working window.")
		return
	}

	httpresp.OK(c, dto.NewFieldDTO(f).WorkingWindow)
}
