package model

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	cpfPattern   = regexp.MustCompile(`^(\d{3}\.\d{3}\.\d{3}-\d{2}|\d{11})$`)
	crmPattern   = regexp.MustCompile(`^(?i:crm)/[A-Za-z]{2} ?\d{6}$`)
	e164BRFormat = regexp.MustCompile(`^\+?\d{2}\d{2}9\d{8}$`)
)

// IsCPF accepts "000.000.000-00" or eleven bare digits.
func IsCPF(s string) bool { return cpfPattern.MatchString(s) }

// IsCRM accepts "CRM/UF 000000", the space being optional.
func IsCRM(s string) bool { return crmPattern.MatchString(s) }

// IsE164 accepts a Brazilian mobile number: country code, area code, then a 9-prefixed
// eight digit subscriber number.
func IsE164(s string) bool { return e164BRFormat.MatchString(s) }

// RegisterFormatValidators installs the cpf, crm and e164br binding tags.
func RegisterFormatValidators(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"cpf":    IsCPF,
		"crm":    IsCRM,
		"e164br": IsE164,
	}
	for tag, check := range tags {
		check := check
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}
