package dongchedi_test

import (
	"errors"
	"fmt"
	"testing"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application errors", func(t *testing.T) {
		t.Parallel()
		err := dongchedi.Errorf(dongchedi.ESTRUCTURE, "configuration tables absent")
		assert.Equal(t, dongchedi.ESTRUCTURE, dongchedi.ErrorCode(err))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("fetching page: %w", dongchedi.Errorf(dongchedi.ENAVIGATION, "HTTP 404"))
		assert.Equal(t, dongchedi.ENAVIGATION, dongchedi.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, dongchedi.EINTERNAL, dongchedi.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", dongchedi.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application errors", func(t *testing.T) {
		t.Parallel()
		err := dongchedi.Errorf(dongchedi.EINVALID, "request URL required")
		assert.Equal(t, "request URL required", dongchedi.ErrorMessage(err))
	})

	t.Run("masks non-application errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", dongchedi.ErrorMessage(errors.New("boom")))
	})
}
