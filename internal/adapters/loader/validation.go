package loader

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

var validate = validator.New()

// ValidateRecipe checks a decoded recipe against the struct tags on the
// domain types: non-empty names, positive quantities, labour minutes in
// [0,59], non-negative gold. A recipe with no buildings is a data anomaly
// the wiki dump actually contains, so it only warrants a log line upstream,
// not a rejection here.
func ValidateRecipe(recipe *crafting.Recipe) error {
	if err := validate.Struct(recipe); err != nil {
		return formatValidationError(recipe.ID, err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(id string, err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Field(),
			e.Tag(),
			e.Value(),
		))
	}
	return fmt.Errorf("recipe %s failed validation:\n  %s", id, strings.Join(messages, "\n  "))
}
