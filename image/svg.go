// Package image renders gametree views as SVG board snapshots.
package image

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/corentings/chess/v2"

	"github.com/mway1/gametree"
)

const (
	sqSize    = 45
	boardSize = 8 * sqSize
)

type encoder struct {
	light      string
	dark       string
	lastMove   string
	check      string
	coordinate bool
}

// SquareColors is designed to be used as an optional argument
// to the SVG function. It changes the default light and
// dark square colors to the colors given.
func SquareColors(light, dark string) func(*encoder) {
	return func(e *encoder) {
		e.light = light
		e.dark = dark
	}
}

// Coordinates toggles the file and rank labels.
func Coordinates(on bool) func(*encoder) {
	return func(e *encoder) {
		e.coordinate = on
	}
}

// SVG writes the board of v to w: squares, last-move and check highlights,
// pieces, then annotation shapes, seen from the headers' orientation.
func SVG(w io.Writer, rules gametree.RuleEngine, v gametree.View, options ...func(*encoder)) error {
	e := &encoder{
		light:      "#f0d9b5",
		dark:       "#b58863",
		lastMove:   "#cdd26a",
		check:      "#e06060",
		coordinate: true,
	}
	for _, op := range options {
		op(e)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(boardSize, boardSize)
	writeMarkers(canvas)

	flipped := v.Headers.Orientation == chess.Black
	checkSq := v.CheckSquare(rules)
	board := v.Board(rules)

	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		x, y := xy(sq, flipped)
		fill := e.dark
		if (int(sq.File())+int(sq.Rank()))%2 == 1 {
			fill = e.light
		}
		switch {
		case sq == checkSq:
			fill = e.check
		case v.LastMove != nil && (sq == v.LastMove[0] || sq == v.LastMove[1]):
			fill = e.lastMove
		}
		canvas.Rect(x, y, sqSize, sqSize, "fill:"+fill)

		if p, ok := board[sq]; ok && p != chess.NoPiece {
			canvas.Text(x+sqSize/2, y+sqSize*3/4, glyph(p),
				"font-size:36px;text-anchor:middle;font-family:serif")
		}
		if e.coordinate {
			writeCoordinate(canvas, sq, x, y, flipped)
		}
	}

	for _, s := range v.Shapes {
		writeShape(canvas, s, flipped)
	}
	canvas.End()
	return ew.err
}

func xy(sq chess.Square, flipped bool) (int, int) {
	file, rank := int(sq.File()), int(sq.Rank())
	if flipped {
		return (7 - file) * sqSize, rank * sqSize
	}
	return file * sqSize, (7 - rank) * sqSize
}

func writeCoordinate(canvas *svg.SVG, sq chess.Square, x, y int, flipped bool) {
	style := "font-size:10px;fill:#404040;font-family:sans-serif"
	bottom, left := chess.Rank1, chess.FileA
	if flipped {
		bottom, left = chess.Rank8, chess.FileH
	}
	if sq.Rank() == bottom {
		canvas.Text(x+sqSize-8, y+sqSize-3, string(rune('a'+int(sq.File()))), style)
	}
	if sq.File() == left {
		canvas.Text(x+2, y+11, fmt.Sprint(int(sq.Rank())+1), style)
	}
}

var brushColors = map[string]string{
	gametree.BrushGreen:  "#15781b",
	gametree.BrushRed:    "#882020",
	gametree.BrushBlue:   "#003088",
	gametree.BrushYellow: "#e68f00",
}

func brushColor(brush string) (string, string) {
	if c, ok := brushColors[brush]; ok {
		return brush, c
	}
	return gametree.BrushGreen, brushColors[gametree.BrushGreen]
}

func writeMarkers(canvas *svg.SVG) {
	canvas.Def()
	for name, color := range brushColors {
		canvas.Marker("arrowhead-"+name, 2, 2, 4, 4, `orient="auto"`)
		canvas.Path("M0,0 L4,2 L0,4 z", "fill:"+color)
		canvas.MarkerEnd()
	}
	canvas.DefEnd()
}

func writeShape(canvas *svg.SVG, s gametree.Shape, flipped bool) {
	name, color := brushColor(s.Brush)
	x1, y1 := xy(s.Orig, flipped)
	if !s.IsArrow() {
		canvas.Circle(x1+sqSize/2, y1+sqSize/2, sqSize/2-2,
			"fill:none;stroke-width:4;stroke-opacity:0.8;stroke:"+color)
		return
	}
	x2, y2 := xy(s.Dest, flipped)
	canvas.Line(x1+sqSize/2, y1+sqSize/2, x2+sqSize/2, y2+sqSize/2,
		fmt.Sprintf("stroke:%s;stroke-width:8;stroke-opacity:0.7;stroke-linecap:round", color),
		fmt.Sprintf(`marker-end="url(#arrowhead-%s)"`, name))
}

var glyphs = map[chess.PieceType][2]string{
	chess.King:   {"♔", "♚"},
	chess.Queen:  {"♕", "♛"},
	chess.Rook:   {"♖", "♜"},
	chess.Bishop: {"♗", "♝"},
	chess.Knight: {"♘", "♞"},
	chess.Pawn:   {"♙", "♟"},
}

func glyph(p chess.Piece) string {
	g := glyphs[p.Type()]
	if p.Color() == chess.White {
		return g[0]
	}
	return g[1]
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, nil
}
