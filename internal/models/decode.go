package models

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/crucial707/walti/internal/apierr"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports failures by JSON field name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// unmarshalStrict decodes an object into a wire struct and checks its
// validate tags. what names the resource in error messages.
func unmarshalStrict(data []byte, out any, what string) error {
	if err := json.Unmarshal(data, out); err != nil {
		return apierr.Wrap(err, "decode "+what)
	}
	if err := validate.Struct(out); err != nil {
		return apierr.Wrap(err, "decode "+what)
	}
	return nil
}

// isNull reports whether raw is absent or the JSON literal null.
func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
