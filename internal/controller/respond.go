package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"digistore_v1/internal/service"
)

// respondError 把服务层错误分类映射为 HTTP 状态码
// NotFound→404 Forbidden→403 Unauthorized→401
// InvalidArgument/InvalidState/Conflict→400，其余→500
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrConflict):
		status = http.StatusBadRequest
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
