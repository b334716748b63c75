// Package request holds the inbound HTTP payloads and their validation.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/cyberalexander/messengerio/internal/domain/message"
)

// ErrInvalidBody is returned when the request body is not a JSON object.
var ErrInvalidBody = errors.New("invalid JSON body")

var validate = mustValidator()

// SendMessageRequest is the JSON body of POST /api/v1/sms.
type SendMessageRequest struct {
	DestinationPhoneNumber string `json:"destinationPhoneNumber" validate:"required,notblank" example:"+15551234567"`
	Message                string `json:"message" validate:"required,notblank" example:"hello"`
}

// Decode reads the first JSON value from r into a SendMessageRequest.
// Unknown fields and anything after that value are ignored. The reader's
// own error (e.g. *http.MaxBytesError) stays reachable through errors.As.
func Decode(r io.Reader) (SendMessageRequest, error) {
	var req SendMessageRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return SendMessageRequest{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return req, nil
}

// Validate checks that both fields are present and not blank.
func (r SendMessageRequest) Validate() error {
	return validateStruct(r)
}

// ToDomain converts the payload into a message.Request.
func (r SendMessageRequest) ToDomain() (message.Request, error) {
	return message.NewRequest(r.DestinationPhoneNumber, r.Message)
}

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Fields extracts the field errors from err, or nil when err is not a ValidationError.
func Fields(err error) map[string]string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	return nil
}

func mustValidator() *validator.Validate {
	v, err := newValidator()
	if err != nil {
		panic(fmt.Sprintf("request: build validator: %v", err))
	}
	return v
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// notblank ships outside the baked-in set and must be registered.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("register notblank: %w", err)
	}

	// Report fields by their JSON names so clients see what they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v, nil
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required", "notblank":
			fields[fe.Field()] = fmt.Sprintf("%s cannot be blank", fe.Field())
		default:
			fields[fe.Field()] = fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
		}
	}

	return &ValidationError{
		Message: "validation failed",
		Fields:  fields,
	}
}
