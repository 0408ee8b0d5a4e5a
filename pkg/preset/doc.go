// Package preset provides the built-in share card templates.
//
// A preset pairs a starting grid with a caption. Three are built in:
//
//   - wordle: 5 columns by 4 rows of black squares, captioned with the
//     day's puzzle number
//   - strands: one blue circle per word in today's puzzle, 4 per row,
//     captioned with the puzzle number and clue
//   - connections: 4 by 4, one color per row, captioned with the day's
//     puzzle number
//
// The grid factories ([Wordle], [Strands], [Connections]) are pure. Captions
// depend on the clock and, for strands, on a [PuzzleProvider]; a [Catalog]
// bundles both with an injectable clock and locale:
//
//	cat := preset.NewCatalog(strands.NewClient(backend, 24*time.Hour))
//	card, err := cat.Load(ctx, "connections")
//	fmt.Println(card.Caption) // Connections\nPuzzle #N
package preset
