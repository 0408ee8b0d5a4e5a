package preset

import (
	"fmt"
	"time"

	"golang.org/x/text/message"

	"github.com/matzehuels/tilecard/pkg/integrations/strands"
)

// Day-one reference instants. Puzzle numbers count whole days since these.
var (
	WordleEpoch      = time.Date(2021, 6, 19, 11, 59, 59, 0, time.UTC)
	ConnectionsEpoch = time.Date(2023, 6, 11, 11, 59, 59, 0, time.UTC)
)

const day = 24 * time.Hour

// DaysSince returns the number of whole days from epoch to now, rounded
// toward negative infinity.
func DaysSince(epoch, now time.Time) int {
	d := now.Sub(epoch)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

// WordleCaption returns "Wordle N ?/6\n" with N grouped for p's locale.
// The trailing newline leaves a blank line between caption and grid.
func WordleCaption(p *message.Printer, now time.Time) string {
	return p.Sprintf("Wordle %d ?/6\n", DaysSince(WordleEpoch, now))
}

// ConnectionsCaption returns "Connections\nPuzzle #N" with N grouped for p's
// locale.
func ConnectionsCaption(p *message.Printer, now time.Time) string {
	return p.Sprintf("Connections\nPuzzle #%d", DaysSince(ConnectionsEpoch, now))
}

// StrandsCaption returns the puzzle number and the clue in typographic
// quotes.
func StrandsCaption(pz *strands.Puzzle) string {
	return fmt.Sprintf("Strands #%d\n“%s”", pz.ID, pz.Clue)
}
