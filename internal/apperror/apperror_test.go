package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("Wrapped conflict", func(t *testing.T) {
		err := fmt.Errorf("approve: %w", Conflict("rental is %s", "active"))
		assert.Equal(t, KindConflict, KindOf(err))
		assert.True(t, Is(err, KindConflict))
		assert.Equal(t, "rental is active", Message(err))
	})

	t.Run("Foreign error is internal", func(t *testing.T) {
		err := errors.New("disk on fire")
		assert.Equal(t, KindInternal, KindOf(err))
		assert.Equal(t, "internal server error", Message(err))
	})

	t.Run("Internal hides cause", func(t *testing.T) {
		err := Internal(errors.New("pq: connection refused"), "failed to load rentals")
		assert.Equal(t, "internal server error", Message(err))
		assert.Contains(t, err.Error(), "connection refused")
	})
}
