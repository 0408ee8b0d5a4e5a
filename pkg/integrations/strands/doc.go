// Package strands fetches the daily Strands puzzle descriptor.
//
// The descriptor is a public JSON document keyed by date:
//
//	https://www.nytimes.com/games-assets/strands/2024-03-04.json
//
// Only a few fields matter for a share card: the puzzle number, the clue,
// and the theme words, whose count plus one (the spangram) is the number of
// tiles in a finished grid.
package strands
