package grid

import (
	"strconv"
	"strings"
	"unicode/utf8"

	errs "github.com/matzehuels/tilecard/pkg/errors"
)

// Rune decodes the glyph's hexadecimal code point.
func (g Glyph) Rune() (rune, error) {
	if g.IsUnset() {
		return 0, errs.New(errs.ErrCodeInvalidGlyph, "unset glyph has no character")
	}
	n, err := strconv.ParseUint(string(g), 16, 32)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidGlyph, err, "glyph %q is not a hex code point", string(g))
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, errs.New(errs.ErrCodeInvalidGlyph, "glyph %q is not a valid code point", string(g))
	}
	return r, nil
}

// String returns the glyph's character, or the raw value if it does not
// decode.
func (g Glyph) String() string {
	r, err := g.Rune()
	if err != nil {
		return string(g)
	}
	return string(r)
}

// ShareText assembles the share card: the caption, a newline, then one line
// per grid row with each cell's character. Rows are separated by newlines
// and the text has no trailing newline.
func ShareText(caption string, s State) (string, error) {
	var b strings.Builder
	b.WriteString(caption)
	b.WriteByte('\n')
	for r, row := range ToGrid(s) {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, g := range row {
			ch, err := g.Rune()
			if err != nil {
				return "", errs.Wrap(errs.ErrCodeInvalidGlyph, err, "cell (%d, %d)", r, c)
			}
			b.WriteRune(ch)
		}
	}
	return b.String(), nil
}
