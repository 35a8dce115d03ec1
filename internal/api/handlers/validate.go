package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator that reports fields by their JSON tag, so
// validation detail names the keys clients actually send.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
