package state

import (
	"errors"
	"fmt"
)

// ErrNoRecipe is returned by operations that need a loaded recipe.
var ErrNoRecipe = errors.New("no recipe loaded")

// ValidationError reports user input that cannot be turned into a recipe.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StorageError wraps a failure reading or writing the persisted bookmarks.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("bookmark storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
