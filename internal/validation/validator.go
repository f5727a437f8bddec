// Package validation checks request and response DTOs against their
// `validate` struct tags and renders failures as localized field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	pt_br_translations "github.com/go-playground/validator/v10/translations/pt_BR"

	apperrors "coursehub/internal/errors"
)

const (
	LocaleEnglish    = "en"
	LocalePortuguese = "pt_BR"
)

// Errors is the rejection produced when a struct fails validation.
type Errors []apperrors.FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New builds a Validator whose messages are rendered in locale.
func New(locale string) (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	uni := ut.New(en.New(), en.New(), pt_BR.New())
	trans, found := uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}

	var err error
	switch locale {
	case LocalePortuguese:
		err = pt_br_translations.RegisterDefaultTranslations(v, trans)
	default:
		err = en_translations.RegisterDefaultTranslations(v, trans)
	}
	if err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	if err := registerMessages(v, trans, catalogs[trans.Locale()]); err != nil {
		return nil, err
	}

	return &Validator{validate: v, trans: trans}, nil
}

// Validate returns nil when i satisfies its rules, Errors when it does not,
// and any other error when i cannot be validated at all.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(cv.trans),
		})
	}
	return out
}

// fieldName reports fields by their wire name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}
