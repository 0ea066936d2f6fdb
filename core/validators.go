package core

import (
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator
	validInit  sync.Once

	// custom validation tags & texts
	jsonFileTag  = "jsonfile"
	jsonFileText = "{0} must be a plain file name ending in .json"

	requiredTag  = "required"
	requiredText = "{0} is required"
)

// NewValidator returns the shared validator and its english translator, initializing them on first use.
func NewValidator() (*validator.Validate, ut.Translator) {
	validInit.Do(func() {
		validate = validator.New()
		translator = newTranslator()
		InitValidators(validate, translator)
	})
	return validate, translator
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	t, _ := uni.GetTranslator("en")
	return t
}

// InitValidators registers the default translations and the custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(jsonFileTag, jsonFileValidation)
	RegisterCustomTranslation(validate, translator, jsonFileTag, jsonFileText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// jsonFileValidation only allows bare file names (no directories) with a .json extension.
func jsonFileValidation(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return filepath.Base(name) == name && strings.HasSuffix(strings.ToLower(name), ".json")
}
