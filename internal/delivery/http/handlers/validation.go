package handlers

import (
	"sync"

	"github.com/drovo/drovo-service/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the pan, ifsc and phone tags to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		rules := map[string]func(string) bool{
			"pan":   domain.IsValidPAN,
			"ifsc":  domain.IsValidIFSC,
			"phone": domain.IsValidPhone,
		}
		for tag, check := range rules {
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return check(fl.Field().String())
			})
		}
	})
}
