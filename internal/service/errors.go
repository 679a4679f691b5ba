package service

import "errors"

// 服务层业务错误，handler 通过 errors.Is 映射到 HTTP 状态码。
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrForbidden          = errors.New("forbidden")
	ErrUnknownResource    = errors.New("unknown resource")
	ErrUnsupportedAction  = errors.New("unsupported action")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
)
