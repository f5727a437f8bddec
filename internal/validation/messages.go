package validation

import (
	"fmt"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type catalog struct {
	labels   map[string]string
	messages map[string]string
}

// Messages are keyed by tag, with ".string" and ".number" variants for the
// length/size tags.
var catalogs = map[string]catalog{
	LocalePortuguese: {
		labels: map[string]string{
			"title":       "Título",
			"description": "Descrição",
			"email":       "E-mail",
			"password":    "Senha",
			"id":          "ID",
			"search":      "Busca",
			"page":        "Página",
			"limit":       "Limite",
			"orderBy":     "Ordenação",
		},
		messages: map[string]string{
			"required":     "{0} é obrigatório",
			"min.string":   "{0} deve ter no mínimo {1} caracteres",
			"min.number":   "{0} deve ser {1} ou maior",
			"max.string":   "{0} deve ter no máximo {1} caracteres",
			"max.number":   "{0} deve ser {1} ou menor",
			"uuid":         "{0} deve ser um UUID válido",
			"uuid_rfc4122": "{0} deve ser um UUID válido",
			"email":        "{0} deve ser um endereço de e-mail válido",
			"oneof":        "{0} deve ser um de [{1}]",
		},
	},
	LocaleEnglish: {
		labels: map[string]string{
			"title":       "Title",
			"description": "Description",
			"email":       "Email",
			"password":    "Password",
			"id":          "ID",
			"search":      "Search",
			"page":        "Page",
			"limit":       "Limit",
			"orderBy":     "Order by",
		},
		messages: map[string]string{
			"required":     "{0} is required",
			"min.string":   "{0} must be at least {1} characters long",
			"min.number":   "{0} must be {1} or greater",
			"max.string":   "{0} must be at most {1} characters long",
			"max.number":   "{0} must be {1} or less",
			"uuid":         "{0} must be a valid UUID",
			"uuid_rfc4122": "{0} must be a valid UUID",
			"email":        "{0} must be a valid email address",
			"oneof":        "{0} must be one of [{1}]",
		},
	},
}

var sizedTags = map[string]bool{"min": true, "max": true}

func registerMessages(v *validator.Validate, trans ut.Translator, c catalog) error {
	for field, label := range c.labels {
		if err := trans.Add("label."+field, label, true); err != nil {
			return fmt.Errorf("add label %s: %w", field, err)
		}
	}
	for key, text := range c.messages {
		if err := trans.Add("msg."+key, text, true); err != nil {
			return fmt.Errorf("add message %s: %w", key, err)
		}
	}

	registered := map[string]bool{}
	for key := range c.messages {
		tag := strings.TrimSuffix(strings.TrimSuffix(key, ".string"), ".number")
		if registered[tag] {
			continue
		}
		registered[tag] = true

		noop := func(ut.Translator) error { return nil }
		if err := v.RegisterTranslation(tag, trans, noop, translate); err != nil {
			return fmt.Errorf("register %s translation: %w", tag, err)
		}
	}
	return nil
}

func translate(t ut.Translator, fe validator.FieldError) string {
	key := "msg." + fe.Tag()
	if sizedTags[fe.Tag()] {
		key += "." + sizeKind(fe.Kind())
	}

	msg, err := t.T(key, label(t, fe.Field()), fe.Param())
	if err != nil {
		return fe.Error()
	}
	return msg
}

func label(t ut.Translator, field string) string {
	if l, err := t.T("label." + field); err == nil {
		return l
	}
	return field
}

func sizeKind(k reflect.Kind) string {
	switch k {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return "string"
	default:
		return "number"
	}
}
