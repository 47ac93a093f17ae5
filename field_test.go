package dongchedi_test

import (
	"testing"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/stretchr/testify/assert"
)

func TestConfidence_Rank(t *testing.T) {
	t.Parallel()

	assert.Greater(t, dongchedi.ConfidenceExact.Rank(), dongchedi.ConfidenceInferred.Rank())
	assert.Greater(t, dongchedi.ConfidenceInferred.Rank(), dongchedi.ConfidenceMissing.Rank())
	assert.Equal(t, 0, dongchedi.Confidence("bogus").Rank())
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	t.Run("renders whole numbers without decimals", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "159800", dongchedi.NumberValue(159800).String())
	})

	t.Run("renders fractional numbers exactly", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "5.2", dongchedi.NumberValue(5.2).String())
	})

	t.Run("renders booleans as yes and no", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "yes", dongchedi.BoolValue(true).String())
		assert.Equal(t, "no", dongchedi.BoolValue(false).String())
	})

	t.Run("renders options and text as-is", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "standard", dongchedi.OptionValue("standard").String())
		assert.Equal(t, "全景天窗", dongchedi.TextValue("全景天窗").String())
	})
}

func TestNormalizedField_Raw(t *testing.T) {
	t.Parallel()

	t.Run("appends the unit when present", func(t *testing.T) {
		t.Parallel()
		f := dongchedi.NormalizedField{Value: dongchedi.NumberValue(12000), Unit: "km"}
		assert.Equal(t, "12000 km", f.Raw())
	})

	t.Run("omits the unit when absent", func(t *testing.T) {
		t.Parallel()
		f := dongchedi.NormalizedField{Value: dongchedi.BoolValue(true)}
		assert.Equal(t, "yes", f.Raw())
	})
}
