// Package errs 定义了业务错误的分类，handler 层根据分类决定HTTP状态码和展示给用户的文案
package errs

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	// 对象存储出错，和 Internal 一样不会把原因透传给用户
	KindStorage
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newErr(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

func Validation(msg string) error   { return newErr(KindValidation, msg, nil) }
func Unauthorized(msg string) error { return newErr(KindUnauthorized, msg, nil) }
func Forbidden(msg string) error    { return newErr(KindForbidden, msg, nil) }
func NotFound(msg string) error     { return newErr(KindNotFound, msg, nil) }
func Conflict(msg string) error     { return newErr(KindConflict, msg, nil) }

// Storage 包装对象存储的底层错误
func Storage(cause error) error {
	return newErr(KindStorage, "文件存储服务暂时不可用，请稍后再试", cause)
}

// Internal 包装数据库等基础设施错误
func Internal(cause error) error {
	return newErr(KindInternal, "系统错误，请稍后再试", cause)
}

// KindOf 返回错误的分类，不是 *Error 的一律当作 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is 判断错误是否属于某个分类
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage 返回可以安全展示给用户的文案
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "系统错误，请稍后再试"
}
