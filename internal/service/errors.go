package service

import "errors"

// ==================== 错误分类 ====================

// 错误分类哨兵，controller 层用 errors.Is 映射 HTTP 状态码：
// NotFound→404 Forbidden→403 Unauthorized→401
// InvalidArgument/InvalidState/Conflict→400，其余→500
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
)
