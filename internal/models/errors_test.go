package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{ErrOperadoraNotFound, ErrInvalidPage, ErrInvalidLimit}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup 123: %w", ErrOperadoraNotFound)
	assert.ErrorIs(t, wrapped, ErrOperadoraNotFound)
	assert.Equal(t, "operadora não encontrada", ErrOperadoraNotFound.Error())
}
