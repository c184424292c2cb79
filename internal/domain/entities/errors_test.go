//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/gitshell/internal/domain/entities"
)

func TestCloneError(t *testing.T) {
	t.Parallel()

	t.Run("should carry the diagnostic message", func(t *testing.T) {
		t.Parallel()

		// given
		err := &entities.CloneError{Message: "fatal: repository not found"}

		// then
		assert.Contains(t, err.Error(), "clone failed")
		assert.Contains(t, err.Error(), "repository not found")
	})

	t.Run("should match ErrOperationCancelled only when cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		cancelled := &entities.CloneError{Message: "terminated on caller request", Cancelled: true}
		failed := &entities.CloneError{Message: "exit status 128"}

		// then
		assert.True(t, errors.Is(cancelled, entities.ErrOperationCancelled))
		assert.False(t, errors.Is(failed, entities.ErrOperationCancelled))
		assert.Contains(t, cancelled.Error(), "clone cancelled")
	})
}
