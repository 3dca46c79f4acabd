package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/field-scheduler/internal/dto"
	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
	"github.com/BruksfildServices01/field-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/field-scheduler/internal/images"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
)

const (
	maxImageUpload = 10 << 20
	imageQuality   = 80
)

type FieldImageHandler struct {
	fields   *FieldHandler
	store    images.Store
	maxWidth int
}

func NewFieldImageHandler(fields *FieldHandler, store images.Store, maxWidth int) *FieldImageHandler {
	return &FieldImageHandler{
		fields:   fields,
		store:    store,
		maxWidth: maxWidth,
	}
}

// Put takes a multipart "image" file, stores it as WebP and points the
// field at the uploaded object.
func (h *FieldImageHandler) Put(c *gin.Context) {
	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "image_uploads_disabled", "Image uploads are not configured.")
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	f, err := h.fields.fields.GetOwnedField(ctx, id, middleware.UserID(c))
	if err != nil {
		writeFieldError(c, err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "image_required", "Send the picture in the \"image\" form field.")
		return
	}
	if header.Size > maxImageUpload {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "image_too_large", "The picture is too large.")
		return
	}

	file, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "image_unreadable", "Could not read the picture.")
		return
	}
	defer file.Close()

	body, err := images.ToWebP(file, h.maxWidth, imageQuality)
	if err != nil {
		if errors.Is(err, images.ErrUnsupportedImage) {
			httperr.BadRequest(c, "unsupported_image", "Only JPEG, PNG and WebP pictures are accepted.")
			return
		}
		httperr.Internal(c, "image_conversion_failed", "Could not process the picture.")
		return
	}

	key := fmt.Sprintf("fields/%d/%s.webp", f.ID, uuid.NewString())
	url, err := h.store.Put(ctx, key, images.ContentTypeWebP, body)
	if err != nil {
		log.Println("field image upload:", err)
		httperr.Write(c, http.StatusBadGateway, "image_upload_failed", "Could not store the picture.")
		return
	}

	f.ImageURL = url
	if err := h.fields.save(c, f, "field_updated"); err != nil {
		httperr.Internal(c, "failed_to_update_field", "Could not update the field.")
		return
	}

	httpresp.OK(c, dto.NewFieldDTO(f))
}
