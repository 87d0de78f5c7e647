package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"

	"github.com/mway1/gametree"
	"github.com/mway1/gametree/image"
)

const usage = `commands:
  <move>                  play a move (e4, Nf3, e2e4, e7e8q, O-O)
  drop <from> <to> [!]    drag a piece; ! forces the promotion dialog
  select <q|r|b|n>        choose the pending promotion piece
  cancel                  dismiss the promotion dialog
  back | fwd | main       navigate
  goto <id>               jump to a node
  promote <id>            make a variation the main line
  flip                    flip the board
  edit                    toggle free-edit mode
  fen <fen>               overwrite the current position
  result <1-0|0-1|1/2-1/2|*>
  header <key> <value>
  arrow <code>... [brush] annotate with arrows (e2e4)
  mark <square> [brush]   highlight a square
  clear                   remove annotations
  score <cp> [depth]      attach an evaluation
  svg <file>              write the board as SVG
  view | help | quit`

func dispatch(ctx context.Context, s *gametree.Session, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	args := fields[1:]
	show := true
	var err error

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Println(usage)
		return false, nil
	case "view":
	case "drop":
		err = drop(ctx, s, args)
		if err == nil && s.EditMode() {
			show = false
		}
	case "select":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: select <q|r|b|n>")
		}
		err = s.SelectPromotion(pieceType(args[0]))
	case "cancel":
		s.CancelPromotion()
	case "back":
		s.GoBack()
	case "fwd":
		s.GoForward()
	case "main":
		s.Tree().NavigateToMainLine()
	case "goto":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: goto <id>")
		}
		err = s.GoTo(args[0])
	case "promote":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: promote <id>")
		}
		err = s.Tree().PromoteVariation(args[0])
	case "flip":
		s.ToggleOrientation()
	case "edit":
		fmt.Println("edit mode:", s.ToggleEditMode())
	case "fen":
		err = s.SetPosition(strings.Join(args, " "))
	case "result":
		err = setResult(s, args)
	case "header":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: header <key> <value>")
		}
		setHeader(s, args[0], strings.Join(args[1:], " "))
	case "arrow":
		err = addArrows(s, args)
	case "mark":
		err = mark(s, args)
	case "clear":
		s.SetShapes(nil)
	case "score":
		err = score(s, args)
	case "svg":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: svg <file>")
		}
		err = writeSVG(s, args[0])
	default:
		err = s.SubmitText(ctx, line)
		if err == nil && s.EditMode() {
			show = false
		}
	}
	if err != nil {
		return false, err
	}
	if show {
		printView(os.Stdout, s.View())
	}
	return false, nil
}

func drop(ctx context.Context, s *gametree.Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: drop <from> <to> [!]")
	}
	from, to := gametree.ParseSquare(args[0]), gametree.ParseSquare(args[1])
	if from == chess.NoSquare || to == chess.NoSquare {
		return fmt.Errorf("bad squares %q %q", args[0], args[1])
	}
	mods := gametree.Modifiers{ForceDialog: len(args) > 2 && args[2] == "!"}
	return s.Drop(ctx, from, to, mods)
}

func pieceType(s string) chess.PieceType {
	switch strings.ToLower(s) {
	case "q", "queen":
		return chess.Queen
	case "r", "rook":
		return chess.Rook
	case "b", "bishop":
		return chess.Bishop
	case "n", "knight":
		return chess.Knight
	default:
		return chess.NoPieceType
	}
}

func setResult(s *gametree.Session, args []string) error {
	if len(args) != 1 || !gametree.Result(args[0]).Valid() {
		return fmt.Errorf("usage: result <1-0|0-1|1/2-1/2|*>")
	}
	h := s.Tree().Headers()
	h.Result = gametree.Result(args[0])
	s.SetHeaders(h)
	return nil
}

func setHeader(s *gametree.Session, key, value string) {
	h := s.Tree().Headers()
	switch key {
	case "Event":
		h.Event = value
	case "Site":
		h.Site = value
	case "Date":
		h.Date = value
	case "Round":
		h.Round = value
	case "White":
		h.White = value
	case "Black":
		h.Black = value
	default:
		if h.Extra == nil {
			h.Extra = make(map[string]string)
		}
		h.Extra[key] = value
	}
	s.SetHeaders(h)
}

func addArrows(s *gametree.Session, args []string) error {
	brush := gametree.BrushGreen
	if n := len(args); n > 1 && !gametree.IsMoveCode(args[n-1]) {
		brush, args = args[n-1], args[:n-1]
	}
	shapes := s.Tree().Current().Shapes()
	for _, code := range args {
		arrow, err := gametree.ArrowFromCompact(code, brush)
		if err != nil {
			return err
		}
		shapes = append(shapes, arrow)
	}
	s.SetShapes(shapes)
	return nil
}

func mark(s *gametree.Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mark <square> [brush]")
	}
	sq := gametree.ParseSquare(args[0])
	if sq == chess.NoSquare {
		return fmt.Errorf("bad square %q", args[0])
	}
	brush := gametree.BrushRed
	if len(args) > 1 {
		brush = args[1]
	}
	s.SetShapes(append(s.Tree().Current().Shapes(), gametree.Shape{Orig: sq, Dest: sq, Brush: brush}))
	return nil
}

func score(s *gametree.Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: score <cp> [depth]")
	}
	cp, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	sc := gametree.Score{Centipawns: cp}
	if len(args) > 1 {
		if sc.Depth, err = strconv.Atoi(args[1]); err != nil {
			return err
		}
	}
	s.SetScore(&sc)
	return nil
}

func writeSVG(s *gametree.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := image.SVG(f, gametree.Rules{}, s.View()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printView(w io.Writer, v gametree.View) {
	fmt.Fprintf(w, "node %s\n", v.NodeID)
	fmt.Fprintf(w, "fen  %s\n", v.Position)
	fmt.Fprintf(w, "turn %s", colorName(v.Turn))
	if v.Check {
		fmt.Fprint(w, " (check)")
	}
	if v.EditMode {
		fmt.Fprint(w, " [edit]")
	}
	fmt.Fprintln(w)
	if len(v.Line) > 0 {
		fmt.Fprintf(w, "line %s\n", strings.Join(v.Line, " "))
	}
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if glyphs := v.Material.Glyphs(c); len(glyphs) > 0 {
			fmt.Fprintf(w, "%s +%d %v\n", colorName(c), v.Material.Advantage(c), glyphs)
		}
	}
	for _, tp := range v.Headers.Pairs() {
		fmt.Fprintf(w, "[%s \"%s\"]\n", tp.Key, tp.Value)
	}
	if v.Promotion != nil {
		fmt.Fprintf(w, "promote %s%s to one of %v\n", v.Promotion.Move.From, v.Promotion.Move.To, v.Promotion.Choices)
	}
	if v.Err != nil {
		fmt.Fprintf(w, "error: %v\n", v.Err)
	}
}

func colorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "white"
	case chess.Black:
		return "black"
	default:
		return "-"
	}
}
