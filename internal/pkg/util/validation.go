package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct 按 validate 标签校验结构体，返回首个失败字段的描述
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]",
				firstError.StructNamespace(),
				firstError.Tag())
		}
		return err
	}
	return nil
}
