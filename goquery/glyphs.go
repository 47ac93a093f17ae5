package goquery

import "strings"

// Dongchedi obfuscates sensitive digits (price, mileage) by rendering
// private-use codepoints through a custom font. The mapping below
// restores the characters the font actually draws so downstream
// normalization sees ordinary text like "15.98万".
var glyphReplacer = strings.NewReplacer(
	"\ue53d", "1",
	"\ue3f0", "2",
	"\ue422", "3",
	"\ue42c", "4",
	"\ue49c", "5",
	"\ue42b", "6",
	"\ue4fe", "7",
	"\ue548", "8",
	"\ue4c8", "9",
	"\ue453", "0",
	"\ue45f", "万",
	"\ue531", "公",
	"\ue4fc", "里",
)

// DecodeGlyphs replaces dongchedi's private-use font glyphs with the
// characters they render as. Text without glyphs passes through
// unchanged.
func DecodeGlyphs(s string) string {
	return glyphReplacer.Replace(s)
}
