package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yanqian/fred-insights/internal/domain/series"
)

var registerOnce sync.Once

// registerValidators adds the custom tags used by request DTOs to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("seriesid", func(fl validator.FieldLevel) bool {
			return series.ValidID(strings.TrimSpace(fl.Field().String()))
		})
	})
}

// bindMessage turns a binding failure into a readable message.
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "request body is not valid JSON"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String())
	}
	return err.Error()
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "seriesid":
		return fmt.Sprintf("%s must contain only letters, digits, underscore or hyphen", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

var fieldNames = map[string]string{
	"SeriesID":  "series_id",
	"SortOrder": "sort_order",
	"Limit":     "limit",
	"Data":      "data",
}

func jsonFieldName(fe validator.FieldError) string {
	if name, ok := fieldNames[fe.Field()]; ok {
		return name
	}
	return strings.ToLower(fe.Field())
}
