package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct validates s against its `validate` tags and returns the first
// violation as a plain error.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("field %s failed on %s", first.Field(), first.Tag())
	}

	return err
}
