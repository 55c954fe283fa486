package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MinContractTextChars is the minimum number of non-whitespace characters a
// contract text needs before it is sent to the extractor.
const MinContractTextChars = 20

// MaxContractTextBytes caps the size of a submitted contract text.
const MaxContractTextBytes = 512 * 1024

var (
	// ErrValidation wraps every request validation failure.
	ErrValidation = errors.New("invalid request")

	// ErrContractTextTooShort is returned when the submitted text is too short
	// or too large to be a contract. It wraps ErrValidation.
	ErrContractTextTooShort = fmt.Errorf("%w: contract text too short", ErrValidation)
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("contracttext", validateContractText)
}

// validateContractText requires enough visible characters and bounds the size.
func validateContractText(fl validator.FieldLevel) bool {
	text := fl.Field().String()
	if len(text) > MaxContractTextBytes {
		return false
	}
	visible := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			visible++
			if visible >= MinContractTextChars {
				return true
			}
		}
	}
	return false
}

// validateStruct runs the tag rules and renders failures as one error
// wrapping ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "contracttext" {
			return fmt.Errorf("%w: need at least %d visible characters and at most %d bytes",
				ErrContractTextTooShort, MinContractTextChars, MaxContractTextBytes)
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, ", "))
}
