package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator renders binding failures as field -> message maps.
type Validator struct {
	trans ut.Translator
}

// New configures gin's validator engine to report JSON field names and
// registers English messages for the built-in tags.
func New() *Validator {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)
	}

	return &Validator{trans: trans}
}

// ParseError converts a binding error into a clean map keyed by the JSON
// path of the offending field, e.g. "equipment[0]".
func (v *Validator) ParseError(err error) map[string]string {
	errMap := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			ns := e.Namespace()
			if i := strings.Index(ns, "."); i != -1 {
				ns = ns[i+1:]
			}

			msg := e.Translate(v.trans)
			if e.Tag() == "oneof" {
				msg = fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(e.Param(), " ", ", "))
			}

			errMap[ns] = msg
		}
		return errMap
	}

	errMap["body"] = "Invalid request body format. Please fix your payload."
	return errMap
}
