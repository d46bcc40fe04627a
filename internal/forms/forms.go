// Package forms decodes and validates the typed input of every create and
// edit form. Validation runs before any storage access and reports the first
// violated rule of each field, in field declaration order.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/JonasLeetTheWay/fyyur-go/internal/apperr"
	"github.com/JonasLeetTheWay/fyyur-go/internal/timefmt"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	trans    ut.Translator

	phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	trans, _ = ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}

	register("phone", validPhone, "{0} must look like 123-456-7890")
	register("usstate", validState, "{0} must be a two-letter US state code")
	register("genre", validGenre, "{0} is not a known genre")
	register("id", validID, "{0} must be a positive whole number")
	register("timestamp", validTimestamp, "{0} must be a date and time like 2020-01-31 20:00")
	registerMessage("http_url", "{0} must be an http(s) URL")
}

func register(tag string, fn validator.Func, message string) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
	registerMessage(tag, message)
}

func registerMessage(tag, message string) {
	err := validate.RegisterTranslation(tag, trans, func(t ut.Translator) error {
		return t.Add(tag, message, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, err := t.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	})
	if err != nil {
		panic(err)
	}
}

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validState(fl validator.FieldLevel) bool {
	_, ok := stateSet[fl.Field().String()]
	return ok
}

func validGenre(fl validator.FieldLevel) bool {
	_, ok := genreSet[fl.Field().String()]
	return ok
}

func validID(fl validator.FieldLevel) bool {
	n, err := strconv.ParseUint(fl.Field().String(), 10, 64)
	return err == nil && n > 0
}

func validTimestamp(fl validator.FieldLevel) bool {
	_, err := timefmt.Parse(fl.Field().String())
	return err == nil
}

// check runs the struct rules and folds the result into an apperr.ValidationError.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &apperr.ValidationError{}
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		out.Fields = append(out.Fields, apperr.FieldError{Field: field, Message: fe.Translate(trans)})
	}
	return out
}

// bind decodes the form body into dst and rejects keys dst does not declare.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindWith(dst, binding.Form); err != nil {
		return &apperr.ValidationError{Fields: []apperr.FieldError{{Field: "form", Message: "the form could not be read"}}}
	}

	allowed := formFields(dst)
	var unknown []string
	for key := range c.Request.PostForm {
		if !allowed[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	out := &apperr.ValidationError{}
	for _, key := range unknown {
		out.Fields = append(out.Fields, apperr.FieldError{Field: key, Message: "unknown field " + key})
	}
	if len(out.Fields) > 0 {
		return out
	}
	return nil
}

func formFields(dst any) map[string]bool {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("form"), ",", 2)[0]
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
