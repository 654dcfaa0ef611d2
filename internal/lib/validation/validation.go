// Package validation проверяет входные данные пользовательских операций
// и превращает ошибки go-playground/validator в список нарушений по полям.
//
// Помимо стандартных тегов регистрируются собственные:
//   - password — длина 8..100 символов, заглавная и строчная буква, цифра и спецсимвол;
//   - mobile   — номер в формате +<код страны><4-14 цифр>, возможно с добавочным x...;
//   - objectid — ровно 24 шестнадцатеричных символа.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator"
)

// Границы длины пароля в символах.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
)

var (
	mobileRegex   = regexp.MustCompile(`^\+\d{1,3}\d{4,14}(?:x.+)?$`)
	objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// Violation — одно нарушение правила валидации.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator оборачивает validator.Validate с зарегистрированными тегами.
// Безопасен для конкурентного использования.
type Validator struct {
	validate *validator.Validate
}

// New создает Validator. Имена полей в нарушениях берутся из json-тегов.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// теги статичны, ошибка регистрации означает опечатку в коде
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return len(PasswordProblems(fl.Field().String())) == 0
	})
	mustRegister(v, "mobile", func(fl validator.FieldLevel) bool {
		return IsMobile(fl.Field().String())
	})
	mustRegister(v, "objectid", func(fl validator.FieldLevel) bool {
		return IsObjectID(fl.Field().String())
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Struct проверяет структуру и возвращает все нарушения или nil.
func (v *Validator) Struct(s any) []Violation {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Message: err.Error()}}
	}

	var violations []Violation
	for _, fe := range verrs {
		violations = append(violations, describe(fe)...)
	}
	return violations
}

// IsObjectID сообщает, похожа ли строка на идентификатор хранилища.
func IsObjectID(s string) bool {
	return objectIDRegex.MatchString(s)
}

// IsMobile сообщает, является ли строка номером телефона с кодом страны.
func IsMobile(s string) bool {
	return mobileRegex.MatchString(s)
}

// PasswordProblems возвращает все нарушенные правила сложности пароля.
func PasswordProblems(p string) []string {
	var problems []string
	switch n := utf8.RuneCountInString(p); {
	case n < MinPasswordLength:
		problems = append(problems, fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	case n > MaxPasswordLength:
		problems = append(problems, fmt.Sprintf("must be at most %d characters long", MaxPasswordLength))
	}

	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	if !upper {
		problems = append(problems, "must contain at least one uppercase letter")
	}
	if !lower {
		problems = append(problems, "must contain at least one lowercase letter")
	}
	if !digit {
		problems = append(problems, "must contain at least one number")
	}
	if !symbol {
		problems = append(problems, "must contain at least one special character")
	}
	return problems
}

func describe(fe validator.FieldError) []Violation {
	field := fe.Field()
	one := func(msg string) []Violation {
		return []Violation{{Field: field, Message: msg}}
	}

	switch fe.ActualTag() {
	case "required":
		return one(fmt.Sprintf("%s is required", field))
	case "email":
		return one("invalid email address")
	case "mobile":
		return one("invalid mobile number with country code")
	case "objectid":
		return one("invalid ID format")
	case "password":
		value, _ := fe.Value().(string)
		var out []Violation
		for _, p := range PasswordProblems(value) {
			out = append(out, Violation{Field: field, Message: fmt.Sprintf("%s %s", field, p)})
		}
		return out
	case "min":
		return one(fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
	case "max":
		return one(fmt.Sprintf("%s must be at most %s characters long", field, fe.Param()))
	default:
		return one(fmt.Sprintf("%s is not valid", field))
	}
}
