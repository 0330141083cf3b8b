package endpoint

import (
	"errors"
	"sync"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators installs the cpf, crm and e164br tags on gin's binding engine.
// It is safe to call more than once.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("binding engine is not a validator.Validate")
			return
		}
		validatorsErr = model.RegisterFormatValidators(v)
	})
	return validatorsErr
}
