package validate

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Accepted model years. 1886 is the year of the first patented automobile.
const (
	MinYear = 1886
	MaxYear = 2100
)

const (
	tagFourDigits   = "four_digits"
	tagModelYear    = "model_year"
	tagEntityFormat = "entity_format"
	tagEntityParts  = "entity_parts"
	tagLooseURL     = "loose_url"
)

var looseURL = regexp.MustCompile(`^(https?|ftp)://\S+$`)

type service struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	once sync.Once
	svc  *service
)

// get returns the shared validator, registering custom rules and the
// operator-facing messages on first use.
func get() *service {
	once.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		mustRegister(v, tagFourDigits, isFourDigits)
		mustRegister(v, tagModelYear, isModelYear)
		mustRegister(v, tagEntityFormat, hasDomainSeparator)
		mustRegister(v, tagEntityParts, hasDomainAndID)
		mustRegister(v, tagLooseURL, isLooseURL)

		// Validate.Var carries no field name, so messages are written without
		// one and the caller prefixes its own label.
		registerMessage(v, trans, "required", "cannot be empty")
		registerMessage(v, trans, "len", "must be exactly {0} characters long")
		registerMessage(v, trans, "alphanum", "must be alphanumeric")
		registerMessage(v, trans, tagFourDigits, "must be a 4-digit number")
		registerMessage(v, trans, tagModelYear, "must be between "+strconv.Itoa(MinYear)+" and "+strconv.Itoa(MaxYear))
		registerMessage(v, trans, tagEntityFormat, "must be in the format 'domain.entity_id', e.g., 'sensor.name'")
		registerMessage(v, trans, tagEntityParts, "must have both domain and entity_id")
		registerMessage(v, trans, tagLooseURL, "has an invalid format")

		svc = &service{validate: v, trans: trans}
	})
	return svc
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validate: register " + tag + ": " + err.Error())
	}
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, err := ut.T(tag, fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func isFourDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isModelYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= MinYear && year <= MaxYear
}

func hasDomainSeparator(fl validator.FieldLevel) bool {
	return strings.Contains(fl.Field().String(), ".")
}

func hasDomainAndID(fl validator.FieldLevel) bool {
	domain, id, _ := strings.Cut(fl.Field().String(), ".")
	return domain != "" && id != ""
}

func isLooseURL(fl validator.FieldLevel) bool {
	return looseURL.MatchString(fl.Field().String())
}
