package catalog

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected field value. The write it belongs to is
// not applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ReferentialConflictError is returned when an ingredient cannot be deleted
// because one or more dishes still reference it.
type ReferentialConflictError struct {
	IngredientName string
	DishNames      []string
}

func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("Cannot delete ingredient %q because it is part of the following dishes: \n%s",
		e.IngredientName, strings.Join(e.DishNames, "\n"))
}
