package validation

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/eventsphere/internal/app/models"
)

var (
	standalone     *validator.Validate
	standaloneOnce sync.Once
)

// Validator returns the shared validator used outside of gin binding (GraphQL inputs, services)
func Validator() *validator.Validate {
	standaloneOnce.Do(func() {
		v := validator.New()
		if err := RegisterRules(v); err != nil {
			panic(err)
		}
		standalone = v
	})
	return standalone
}

// Struct validates s with the shared validator
func Struct(s any) error {
	return Validator().Struct(s)
}

// RegisterRules registers the custom tags on v
func RegisterRules(v *validator.Validate) error {
	if err := v.RegisterValidation("attendee_answer", validateAttendeeAnswer); err != nil {
		return fmt.Errorf("register attendee_answer: %w", err)
	}
	if err := v.RegisterValidation("gender", validateGender); err != nil {
		return fmt.Errorf("register gender: %w", err)
	}
	return nil
}

// RegisterGinRules registers the custom tags on gin's binding engine
func RegisterGinRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterRules(v)
}

func validateAttendeeAnswer(fl validator.FieldLevel) bool {
	return models.AttendeeAnswer(fl.Field().String()).Valid()
}

func validateGender(fl validator.FieldLevel) bool {
	return models.Gender(fl.Field().String()).Valid()
}
