package forms

import (
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/go-playground/validator/v10"
	"github.com/sonar-libras/sonar/pkg/models"
)

var (
	employmentTypes = []string{
		string(models.EmploymentCLT),
		string(models.EmploymentPJ),
		string(models.EmploymentInternship),
		string(models.EmploymentTemporary),
		string(models.EmploymentFreelance),
	}
	workModes = []string{
		string(models.ModeOnSite),
		string(models.ModeHybrid),
		string(models.ModeRemote),
	}
)

func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}

	mustRegister("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	mustRegister("employment", func(fl validator.FieldLevel) bool {
		return slice.Contains(employmentTypes, fl.Field().String())
	})
	mustRegister("workmode", func(fl validator.FieldLevel) bool {
		return slice.Contains(workModes, fl.Field().String())
	})
}
