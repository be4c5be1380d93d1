package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors name fields the way clients send them.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
}

// jsonFieldName is the key encoding/json reads field from, or "" if skipped.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// bindJSON decodes and validates the request body. On failure it writes a
// 400 response describing every violated field and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	registerTagNames.Do(useJSONFieldNames)

	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		var body []byte
		if cached, ok := c.Get(gin.BodyBytesKey); ok {
			body, _ = cached.([]byte)
		}
		details := describeBindingError(err, body, req)
		apierrors.BadRequestWithDetails(c, validationMessage(details), details)
		return false
	}
	return true
}

func describeBindingError(err error, body []byte, req interface{}) []apierrors.FieldError {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
		syntaxErr      *json.SyntaxError
		timeErr        *time.ParseError
	)

	switch {
	case errors.As(err, &validationErrs):
		details := make([]apierrors.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, apierrors.FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
		return details
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []apierrors.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("expected %s, received %s", typeErr.Type, typeErr.Value),
		}}
	case errors.As(err, &timeErr):
		fields := invalidTimeFields(body, req)
		if len(fields) == 0 {
			fields = []string{"body"}
		}
		details := make([]apierrors.FieldError, 0, len(fields))
		for _, field := range fields {
			details = append(details, apierrors.FieldError{
				Field:   field,
				Message: "must be an RFC 3339 timestamp",
			})
		}
		return details
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []apierrors.FieldError{{Field: "body", Message: "malformed JSON"}}
	case errors.Is(err, io.EOF):
		return []apierrors.FieldError{{Field: "body", Message: "request body is empty"}}
	default:
		return []apierrors.FieldError{{Field: "body", Message: err.Error()}}
	}
}

var timeType = reflect.TypeOf(time.Time{})

// invalidTimeFields names the time fields of req whose value in body is
// present but does not decode as a timestamp.
func invalidTimeFields(body []byte, req interface{}) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var fields []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		typ := field.Type
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		name := jsonFieldName(field)
		if typ != timeType || name == "" {
			continue
		}

		value, ok := lookupKey(raw, name)
		if !ok || string(value) == "null" {
			continue
		}
		var parsed time.Time
		if err := json.Unmarshal(value, &parsed); err != nil {
			fields = append(fields, name)
		}
	}
	return fields
}

// lookupKey matches keys the way encoding/json does, exact first then
// case-insensitively.
func lookupKey(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if value, ok := raw[name]; ok {
		return value, true
	}
	for key, value := range raw {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

func validationMessage(details []apierrors.FieldError) string {
	parts := make([]string, len(details))
	for i, d := range details {
		parts[i] = d.Field + " " + d.Message
	}
	return "Validation error: " + strings.Join(parts, "; ")
}
