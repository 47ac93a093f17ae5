package goquery_test

import (
	"testing"

	dcdquery "github.com/lmh17ever/dongchedi-parser/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDecodeGlyphs(t *testing.T) {
	t.Parallel()

	t.Run("decodes obfuscated digits and units", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "15.98万", dcdquery.DecodeGlyphs("\ue53d\ue49c.\ue4c8\ue548\ue45f"))
		assert.Equal(t, "1.2万公里", dcdquery.DecodeGlyphs("\ue53d.\ue3f0\ue45f\ue531\ue4fc"))
		assert.Equal(t, "20345678", dcdquery.DecodeGlyphs("\ue3f0\ue453\ue422\ue42c\ue49c\ue42b\ue4fe\ue548"))
	})

	t.Run("passes plain text through unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2021款 大众 速腾", dcdquery.DecodeGlyphs("2021款 大众 速腾"))
	})
}
