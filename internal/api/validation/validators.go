package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ids"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
)

// RegisterValidators installs the request tags shared by the HTTP handlers:
//
//	job_id  accepts "12", "job-12" or "app_12"
//	theme   accepts a known LaTeX theme name, case-insensitively
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("job_id", func(fl validator.FieldLevel) bool {
		_, err := ids.Parse(fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		return latex.ValidTheme(fl.Field().String())
	})
}

// New returns a validator with the shared tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}
