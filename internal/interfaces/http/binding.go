package http

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"helpdesk/internal/domain/extsync"
	vo "helpdesk/internal/domain/ticket/valueobjects"
)

var bindingValidatorsOnce sync.Once

// registerBindingValidators hooks the domain value objects into gin's
// binding engine so enum fields are rejected at bind time with a 400
// instead of surfacing from the use case layer.
func registerBindingValidators() {
	bindingValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_ = v.RegisterValidation("ticketstatus", func(fl validator.FieldLevel) bool {
			return vo.TicketStatus(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("ticketpriority", func(fl validator.FieldLevel) bool {
			return vo.Priority(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("ticketcategory", func(fl validator.FieldLevel) bool {
			return vo.Category(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("syncplatform", func(fl validator.FieldLevel) bool {
			return extsync.Platform(fl.Field().String()).IsValid()
		})
	})
}
