package loop

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
)

// Kind identifies what an Intent asks the loop to do.
type Kind int

const (
	KindCycle           Kind = iota // Advance one cell's glyph
	KindExpand                      // Grow or shrink one axis
	KindModifierPress               // Start holding a modifier key
	KindModifierRelease             // Stop holding a modifier key
	KindCopy                        // Send the share card to the clipboard
	KindSelectPreset                // Replace the grid with a preset
)

var kindNames = [...]string{
	KindCycle:           "cycle",
	KindExpand:          "expand",
	KindModifierPress:   "press",
	KindModifierRelease: "release",
	KindCopy:            "copy",
	KindSelectPreset:    "preset",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Intent is one user action produced by a Surface. Only the fields of its
// Kind are meaningful.
type Intent struct {
	Kind  Kind
	Index int       // KindCycle: flat cell index
	Axis  grid.Axis // KindExpand
	Name  string    // Modifier key name, or preset name
	Text  string    // KindCopy: caption to put above the grid
}

// CycleCell asks to advance cell i.
func CycleCell(i int) Intent { return Intent{Kind: KindCycle, Index: i} }

// ExpandAxis asks to grow axis a, or shrink it while Shift is held.
func ExpandAxis(a grid.Axis) Intent { return Intent{Kind: KindExpand, Axis: a} }

// Press reports that the named modifier key went down.
func Press(name string) Intent { return Intent{Kind: KindModifierPress, Name: name} }

// Release reports that the named modifier key went up.
func Release(name string) Intent { return Intent{Kind: KindModifierRelease, Name: name} }

// Copy asks to copy the share card with the given caption.
func Copy(caption string) Intent { return Intent{Kind: KindCopy, Text: caption} }

// SelectPreset asks to switch to the named preset.
func SelectPreset(name string) Intent { return Intent{Kind: KindSelectPreset, Name: name} }

var captionEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`)

// String formats the intent in the line syntax accepted by ParseIntent.
func (in Intent) String() string {
	switch in.Kind {
	case KindCycle:
		return fmt.Sprintf("cycle %d", in.Index)
	case KindExpand:
		return "expand " + in.Axis.String()
	case KindModifierPress, KindModifierRelease, KindSelectPreset:
		return in.Kind.String() + " " + in.Name
	case KindCopy:
		if in.Text == "" {
			return "copy"
		}
		return "copy " + captionEscaper.Replace(in.Text)
	default:
		return in.Kind.String()
	}
}

// ParseIntent parses one line of the intent syntax:
//
//	cycle 3
//	expand width|height|count
//	press shift
//	release shift
//	copy Wordle 1,234 ?/6\n
//	preset strands
//
// Copy captions take the rest of the line with \n, \t and \\ escapes.
func ParseIntent(line string) (Intent, error) {
	line = strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "cycle":
		i, err := strconv.Atoi(rest)
		if err != nil {
			return Intent{}, errs.Wrap(errs.ErrCodeInvalidIntent, err, "cycle needs a cell index, got %q", rest)
		}
		return CycleCell(i), nil
	case "expand":
		a, err := grid.ParseAxis(rest)
		if err != nil {
			return Intent{}, errs.Wrap(errs.ErrCodeInvalidIntent, err, "expand needs width, height or count")
		}
		return ExpandAxis(a), nil
	case "press", "release":
		if rest == "" {
			return Intent{}, errs.New(errs.ErrCodeInvalidIntent, "%s needs a key name", verb)
		}
		if strings.EqualFold(verb, "press") {
			return Press(rest), nil
		}
		return Release(rest), nil
	case "copy":
		return Copy(unescapeCaption(rest)), nil
	case "preset":
		if rest == "" {
			return Intent{}, errs.New(errs.ErrCodeInvalidIntent, "preset needs a name")
		}
		return SelectPreset(rest), nil
	default:
		return Intent{}, errs.New(errs.ErrCodeInvalidIntent, "unknown intent %q", verb)
	}
}

func unescapeCaption(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
