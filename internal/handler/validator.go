package handler

import (
	"unicode/utf8"

	"Snapora/internal/model"
	"Snapora/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RegisterValidators 把业务相关的校验规则挂到 gin 的 validator 上，启动时调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 的校验引擎不是 validator/v10")
	}
	if err := v.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		return model.IsValidVisibility(fl.Field().String())
	}); err != nil {
		return errors.Wrap(err, "注册 visibility 校验失败")
	}
	if err := v.RegisterValidation("sortorder", func(fl validator.FieldLevel) bool {
		return service.IsValidSort(fl.Field().String())
	}); err != nil {
		return errors.Wrap(err, "注册 sortorder 校验失败")
	}
	if err := v.RegisterValidation("tagslist", validTagsList); err != nil {
		return errors.Wrap(err, "注册 tagslist 校验失败")
	}
	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.IsValidRole(fl.Field().String())
	}); err != nil {
		return errors.Wrap(err, "注册 role 校验失败")
	}
	return nil
}

// validTagsList 逗号分隔的标签，每个标签规范化之后不能超过列宽
func validTagsList(fl validator.FieldLevel) bool {
	for _, name := range model.ParseTagNames(fl.Field().String()) {
		if utf8.RuneCountInString(name) > model.MaxTagNameLen {
			return false
		}
	}
	return true
}
