package engine

import (
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"snakeflip/game"
)

// Render draws the grid with row and column labels, colouring the pieces
// when stderr supports it.
func Render(g game.Grid) string {
	return RenderTo(termenv.NewOutput(os.Stderr), g)
}

// RenderTo draws the grid using the colour profile of out.
func RenderTo(out *termenv.Output, g game.Grid) string {
	pieceA := out.Color("#E88388")
	pieceB := out.Color("#66C2CD")

	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < game.N; col++ {
		sb.WriteString(" " + strconv.Itoa(col))
	}
	for row := 0; row < game.N; row++ {
		sb.WriteString("\n" + strconv.Itoa(row) + " ")
		for col := 0; col < game.N; col++ {
			cell := g.At(row, col)
			style := out.String(cell.String())
			switch cell {
			case game.PieceA:
				style = style.Foreground(pieceA).Bold()
			case game.PieceB:
				style = style.Foreground(pieceB).Bold()
			default:
				style = style.Faint()
			}
			sb.WriteString(" " + style.String())
		}
	}
	sb.WriteString("\n" + out.String(g.Next().String()+" to move").Italic().String())
	return sb.String()
}
