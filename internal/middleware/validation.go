package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/placementhub/internal/pkg/validation"
)

// RegisterValidators installs the portal's custom binding tags on gin's validator and
// makes field errors report JSON names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	validation.UseJSONNames(v)
	return validation.Register(v)
}
