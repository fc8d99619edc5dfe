package render

import (
	"bufio"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/lgbarn/infinite-chess-go/internal/chess"
	"github.com/lgbarn/infinite-chess-go/internal/errors"
)

// MaxSquares bounds the width and height of a rendered region.
const MaxSquares = 256

// Options controls WriteSVG.
type Options struct {
	Square    int            // Pixel size of one square; 32 when zero
	Border    *chess.Bounds  // World border to outline, if any
	Highlight []chess.Coords // Squares to mark, such as royals in check
	Title     string
}

// Fit returns the smallest region holding every instance, grown by margin
// squares on each side. An empty list fits the region around the origin.
func Fit(insts []Instance, margin int64) chess.Bounds {
	if len(insts) == 0 {
		return chess.Bounds{Left: -margin, Bottom: -margin, Right: margin, Top: margin}
	}
	b := chess.Bounds{
		Left: insts[0].Coords.X, Right: insts[0].Coords.X,
		Bottom: insts[0].Coords.Y, Top: insts[0].Coords.Y,
	}
	for _, inst := range insts[1:] {
		c := inst.Coords
		b.Left = min(b.Left, c.X)
		b.Right = max(b.Right, c.X)
		b.Bottom = min(b.Bottom, c.Y)
		b.Top = max(b.Top, c.Y)
	}
	b.Left -= margin
	b.Bottom -= margin
	b.Right += margin
	b.Top += margin
	return b
}

// WriteSVG draws the region of the board holding insts. Rank Top is drawn
// first, so y grows upwards as on a chess diagram.
func WriteSVG(w io.Writer, insts []Instance, region chess.Bounds, opts Options) error {
	if region.Left > region.Right || region.Bottom > region.Top {
		return errors.Wrapf(errors.ErrInvalidConfig, "empty region %+v", region)
	}
	cols, rows := region.Right-region.Left+1, region.Top-region.Bottom+1
	if cols > MaxSquares || rows > MaxSquares || cols <= 0 || rows <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "region %dx%d exceeds %d squares", cols, rows, MaxSquares)
	}
	sq := opts.Square
	if sq <= 0 {
		sq = 32
	}

	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(int(cols)*sq, int(rows)*sq)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	pos := func(c chess.Coords) (int, int) {
		return int(c.X-region.Left) * sq, int(region.Top-c.Y) * sq
	}

	canvas.Gstyle("stroke:none")
	for y := region.Bottom; y <= region.Top; y++ {
		for x := region.Left; x <= region.Right; x++ {
			c := chess.C(x, y)
			fill := "#f0d9b5"
			if c.Parity() == 0 {
				fill = "#b58863"
			}
			if opts.Border != nil && !opts.Border.Contains(c) {
				fill = "#777777"
			}
			px, py := pos(c)
			canvas.Rect(px, py, sq, sq, "fill:"+fill)
		}
	}
	canvas.Gend()

	for _, c := range opts.Highlight {
		if !region.Contains(c) {
			continue
		}
		px, py := pos(c)
		canvas.Rect(px, py, sq, sq, "fill:#ff0000;fill-opacity:0.4")
	}

	font := fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:middle;dominant-baseline:central", sq*2/5)
	for _, inst := range insts {
		if !inst.Live || !region.Contains(inst.Coords) {
			continue
		}
		px, py := pos(inst.Coords)
		switch inst.Type.Species() {
		case chess.Void:
			canvas.Rect(px, py, sq, sq, "fill:#000000")
		case chess.Obstacle:
			canvas.Rect(px+sq/8, py+sq/8, sq*3/4, sq*3/4, "fill:#555555")
		default:
			fill, stroke := "#ffffff", "#000000"
			if inst.Type.Colour() == chess.Black {
				fill, stroke = "#000000", "#ffffff"
			}
			canvas.Circle(px+sq/2, py+sq/2, sq*2/5, fmt.Sprintf("fill:%s;stroke:%s", fill, stroke))
			canvas.Text(px+sq/2, py+sq/2, inst.Type.Species().Abbr(), font+";fill:"+stroke)
		}
	}
	canvas.End()
	return bw.Flush()
}
