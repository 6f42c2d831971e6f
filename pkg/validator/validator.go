package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ghuser/equiprent/pkg/httpx"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "email":
		return "Must be a valid email address"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	case "notblank":
		return "Must not be blank"
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes a 400 (413 for oversized bodies) if either step fails.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		case errors.Is(err, io.EOF):
			httpx.JSONError(w, http.StatusBadRequest, "Request body is required.")
		default:
			httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON: "+decodeReason(err))
		}
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, httpx.ErrorBody{
			Message: "Validation failed",
			Fields:  FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}

// decodeReason keeps the decoder message short: type errors name the field,
// everything else (including date parse errors from custom unmarshalers) is
// passed through.
func decodeReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	}
	return err.Error()
}
