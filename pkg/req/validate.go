package req

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate проверяет теги validate у структуры
func Validate(v interface{}) error {
	if err := validatorInstance().Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// DecodeValid читает JSON и сразу проверяет его
func DecodeValid[T any](body io.Reader) (T, error) {
	payload, err := Decode[T](body)
	if err != nil {
		return payload, err
	}
	return payload, Validate(payload)
}
