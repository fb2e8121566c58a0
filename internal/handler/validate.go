package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
)

// Amount accepts a JSON number or string. Values that are not numbers decode
// to zero and are then rejected by the money rule.
type Amount decimal.Decimal

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount(domain.ParseAmount(strings.Trim(string(b), `"`)))
	return nil
}

func (a Amount) Decimal() decimal.Decimal { return decimal.Decimal(a) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		f, _ := decimal.Decimal(field.Interface().(Amount)).Float64()
		return f
	}, Amount{})

	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return domain.ValidAmount(decimal.NewFromFloat(fl.Field().Float()))
	})

	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return domain.PaymentMethod(fl.Field().String()).IsValid()
	})

	return v
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags. It
// writes the error response itself and reports whether the handler may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return false
	}
	if fields := validateStruct(dst); len(fields) > 0 {
		RespondValidationError(w, fields)
		return false
	}
	return true
}

func validateStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "invalid"}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "money":
		return "must be a positive amount with at most 2 decimal places"
	case "payment_method":
		return "must be cash, card, bank_transfer, mobile_money, or other"
	default:
		return "invalid value"
	}
}
