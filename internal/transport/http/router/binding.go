package router

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"batdongsan-api/internal/domain"
)

var bindingOnce sync.Once

// registerValidators wires the province enum check into gin's binding
// validator and makes field errors report json names.
func registerValidators() {
	bindingOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("province", func(fl validator.FieldLevel) bool {
			return domain.ValidProvince(fl.Field().String())
		})
	})
}
