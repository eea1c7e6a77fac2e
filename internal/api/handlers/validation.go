package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator общий экземпляр validator с правилами сервиса:
// bookingdate (YYYY-MM-DD), bookingtime (HH:MM), bookingstatus (известный статус)
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)

		_ = v.RegisterValidation("bookingdate", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("bookingtime", func(fl validator.FieldLevel) bool {
			_, err := types.NewTimeStringFromString(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("bookingstatus", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseBookingStatus(fl.Field().String())
			return err == nil
		})

		validate = v
	})
	return validate
}

// ValidateStruct проверяет теги validate и возвращает читаемое описание первой ошибки
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("el campo %s es obligatorio", fe.Field())
	case "bookingdate":
		return fmt.Errorf("el campo %s debe tener formato YYYY-MM-DD", fe.Field())
	case "bookingtime":
		return fmt.Errorf("el campo %s debe tener formato HH:MM", fe.Field())
	case "bookingstatus":
		return fmt.Errorf("el campo %s debe ser uno de %s", fe.Field(), statusList())
	default:
		return fmt.Errorf("el campo %s no es válido (%s)", fe.Field(), fe.Tag())
	}
}

func statusList() string {
	names := make([]string, len(domain.AllStatuses))
	for i, s := range domain.AllStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// jsonFieldName подставляет в ошибки имя поля из json тега
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
