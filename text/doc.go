// Package text shapes HUD and safe-area labels into positioned glyphs.
//
// Shaping uses go-text/typesetting's HarfBuzz implementation, so kerning,
// ligatures and right-to-left scripts come out correctly in overlay text.
// The package is deliberately small: the viewport only needs single-line
// labels, so there is no wrapping, no multi-font fallback and no cache
// beyond the parsed font.
package text
