package portal

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/placementhub/internal/pkg/validation"
)

// formValidator checks request DTOs against the same binding rules the server applies,
// so obviously incomplete forms never leave the client.
var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := validation.Register(v); err != nil {
		panic(err)
	}
	validation.UseJSONNames(v)
	return v
}

// FieldErrors are form errors keyed by JSON field name.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e[k]
	}
	return strings.Join(msgs, "; ")
}

// checkForm validates a request body. It returns FieldErrors or nil.
func checkForm(req interface{}) error {
	err := formValidator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = validation.Message(fe)
	}
	return out
}
