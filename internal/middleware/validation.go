package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/affan/clubsphere/internal/app/models"
)

// RegisterValidators wires custom binding tags into gin's validator.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("clubcategory", validClubCategory)
	}
}

// validClubCategory backs the `clubcategory` binding tag. The category set
// is fixed; anything outside it is rejected at binding time.
func validClubCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}
