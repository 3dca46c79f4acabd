package handlers

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/field-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	"github.com/BruksfildServices01/field-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db     *gorm.DB
	fields *infraRepo.FieldGormRepository
}

func NewAuditLogsHandler(db *gorm.DB, fields *infraRepo.FieldGormRepository) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, fields: fields}
}

// List shows the audit trail of one field to its owner.
func (h *AuditLogsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	fieldID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.fields.GetOwnedField(ctx, fieldID, middleware.UserID(c)); err != nil {
		writeFieldError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// Keeps (page-1)*limit from overflowing into a negative offset.
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}

	// --------------------------------------------------
	// Base query, always scoped to the field
	// --------------------------------------------------

	q := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("field_id = ?", fieldID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if from, err := time.Parse(time.DateOnly, c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}

	if to, err := time.Parse(time.DateOnly, c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
