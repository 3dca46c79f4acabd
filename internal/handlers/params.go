package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/field-scheduler/internal/httperr"
)

// idParam parses a positive numeric path parameter and writes a 400 when it
// is not one.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

func uintPtr(v uint) *uint {
	return &v
}
