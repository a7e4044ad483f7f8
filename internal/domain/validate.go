package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Kind enumerates the ways a field can fail validation.
type Kind string

const (
	KindRequired      Kind = "required"
	KindInvalid       Kind = "invalid"
	KindNotPositive   Kind = "not_positive"
	KindNegative      Kind = "negative"
	KindUnknownRole   Kind = "unknown_role"
	KindUnknownStatus Kind = "unknown_status"
	KindTotalMismatch Kind = "total_mismatch"
)

// FieldError names one offending field, using its JSON name.
type FieldError struct {
	Field string `json:"field"`
	Kind  Kind   `json:"kind"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Kind)
}

// ValidationErrors is the failed result of a Validate* call.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("rol", func(fl validator.FieldLevel) bool {
		return Rol(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("estado", func(fl validator.FieldLevel) bool {
		return EstadoBoleta(fl.Field().String()).Valid()
	})
	return v
}

// ValidateUsuario checks a creation body.
func ValidateUsuario(in UsuarioInput) error { return check(in) }

// ValidateUsuarioPatch checks the fields present in a partial update.
func ValidateUsuarioPatch(p UsuarioPatch) error { return check(p) }

// ValidateProducto checks a creation body.
func ValidateProducto(in ProductoInput) error { return check(in) }

// ValidateProductoPatch checks the fields present in a partial update.
func ValidateProductoPatch(p ProductoPatch) error { return check(p) }

// ValidateBoleta checks a checkout body. When items are present the total has
// to match their sum once both are rounded to cents.
func ValidateBoleta(in BoletaInput) error {
	if err := check(in); err != nil {
		return err
	}
	if len(in.Items) > 0 && !decimal.NewFromFloat(in.Total).Round(2).Equal(ItemsTotal(in.Items).Round(2)) {
		return ValidationErrors{{Field: "total", Kind: KindTotalMismatch}}
	}
	return nil
}

func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Kind: kindOf(fe)})
	}
	return out
}

// fieldPath drops the struct name from a validator namespace,
// e.g. "BoletaInput.items[0].cantidad" -> "items[0].cantidad".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func kindOf(fe validator.FieldError) Kind {
	switch fe.Tag() {
	case "required", "min":
		return KindRequired
	case "gt":
		return KindNotPositive
	case "gte":
		if fe.Param() == "0" {
			return KindNegative
		}
		return KindNotPositive
	case "rol":
		return KindUnknownRole
	case "estado":
		return KindUnknownStatus
	}
	return KindInvalid
}
