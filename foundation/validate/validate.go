// Package validate contains the support for validating models.
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shopspring/decimal"
)

// validate holds the settings and caches for validating struct values.
var validate *validator.Validate

// translator is a cache of locale and translation information.
var translator ut.Translator

// Character classes follow the ledger's naming rules: Latin or Greek letters
// for transacting parties, with digits allowed in chain names.
var (
	partyRegex = regexp.MustCompile(`^[A-Za-zΑ-Ωα-ω]+( [A-Za-zΑ-Ωα-ω]+)*$`)
	chainRegex = regexp.MustCompile(`^[A-Za-z0-9Α-Ωα-ω]+( [A-Za-z0-9Α-Ωα-ω]+)*$`)
	userRegex  = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

func init() {

	// Instantiate a validator.
	validate = validator.New()

	// Create a translator for english so the error messages are
	// more human-readable than technical.
	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")

	// Register the english error messages for use.
	en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("partyname", checkPartyName)
	validate.RegisterValidation("chainname", checkChainName)
	validate.RegisterValidation("username", checkUsername)
	validate.RegisterValidation("dgt0", checkDecimalGreaterThanZero)
	validate.RegisterValidation("dgte0", checkDecimalNotNegative)
}

// Check validates the provided model against its declared tags.
func Check(val any) error {
	if err := validate.Struct(val); err != nil {

		// Use a type assertion to get the real error value.
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			field := FieldError{
				Field: verror.Field(),
				Error: verror.Translate(translator),
			}
			fields = append(fields, field)
		}

		return fields
	}

	return nil
}

// PartyName reports whether the name is acceptable for a transacting party:
// Latin or Greek letter groups separated by single spaces, 5 to 35 runes.
func PartyName(name string) bool {
	length := utf8.RuneCountInString(name)
	if length < 5 || length > 35 {
		return false
	}
	return validate.Var(name, "partyname") == nil
}

// ChainName reports whether the name is acceptable for labeling a chain:
// non-empty letter/digit groups separated by single spaces.
func ChainName(name string) bool {
	return validate.Var(name, "chainname") == nil
}

// Username reports whether the name is acceptable for a user account:
// letters, digits and underscores only.
func Username(name string) bool {
	return validate.Var(name, "required,username") == nil
}

// =============================================================================

func checkPartyName(fl validator.FieldLevel) bool {
	return partyRegex.MatchString(fl.Field().String())
}

func checkChainName(fl validator.FieldLevel) bool {
	return chainRegex.MatchString(fl.Field().String())
}

func checkUsername(fl validator.FieldLevel) bool {
	return userRegex.MatchString(fl.Field().String())
}

func checkDecimalGreaterThanZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Sign() > 0
}

func checkDecimalNotNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Sign() >= 0
}
