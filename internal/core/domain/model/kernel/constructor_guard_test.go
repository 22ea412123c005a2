package kernel_test

import (
	"errors"
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		guard := kernel.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		assert.NoError(t, guard.Validate(customError))
		assert.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		guard := kernel.NewConstructorGuard()
		customError := errors.New("not constructed")

		err := guard.Validate(customError)

		assert.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var guard kernel.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := guard.Validate(expectedError)

		assert.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var guard kernel.ConstructorGuard // zero value

		err := guard.Validate(nil)

		assert.Error(t, err)
		assert.Equal(t, kernel.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type coverage struct {
		from  int
		to    int
		guard kernel.ConstructorGuard
	}

	errNotConstructed := errors.New("coverage must be created via its constructor")

	newCoverage := func(from, to int) (coverage, error) {
		if to < from {
			return coverage{}, errors.New("upper bound below lower bound")
		}
		return coverage{from: from, to: to, guard: kernel.NewConstructorGuard()}, nil
	}

	t.Run("constructed_object_passes_validation", func(t *testing.T) {
		c, err := newCoverage(1000000, 1999999)
		assert.NoError(t, err)
		assert.NoError(t, c.guard.Validate(errNotConstructed))
	})

	t.Run("zero_value_object_fails_validation", func(t *testing.T) {
		var c coverage
		assert.Equal(t, errNotConstructed, c.guard.Validate(errNotConstructed))
	})
}
