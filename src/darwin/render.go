package darwin

import (
	"io"
	"strconv"
	"strings"
)

const emptySpace = '.'

//String renders the board:
//the turn line, a column heading of col%10 digits, one line per row and a blank line
func (w *World) String() string {
	var b strings.Builder
	b.WriteString("Turn = ")
	b.WriteString(strconv.Itoa(w.turn))
	b.WriteString(".\n  ")
	for c := 0; c < w.width; c++ {
		b.WriteByte(byte('0' + c%10))
	}
	b.WriteByte('\n')
	for r := 0; r < w.height; r++ {
		b.WriteString(strconv.Itoa(r))
		b.WriteByte(' ')
		for c := 0; c < w.width; c++ {
			if i, ok := w.grid[Loc(r, c)]; ok {
				b.WriteRune(w.zoo[i].behavior.Glyph())
			} else {
				b.WriteByte(emptySpace)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

//Print writes the board to out
func (w *World) Print(out io.Writer) error {
	_, err := io.WriteString(out, w.String())
	return err
}
