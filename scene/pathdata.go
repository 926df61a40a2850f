// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"strconv"
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
	"github.com/vecscene/core/math32"
)

////////  serializing

// PathData returns the path as an SVG path-data string, formatted at
// the context's output precision. The first segment is emitted as an
// absolute M; straight stretches with no handles use relative l, h,
// or v; everything else uses relative c. Closed paths end in z.
func (p *Path) PathData() string {
	prec := DefaultPrecision
	if p.ctx != nil {
		prec = p.ctx.Precision
	}
	return p.pathData(prec)
}

func (p *Path) pathData(prec int) string {
	var b strings.Builder
	fnum := func(v float32) string {
		return strconv.FormatFloat(float64(math32.Truncate(v, prec)), 'f', -1, 32)
	}
	fpair := func(v math32.Vector2) string {
		return fnum(v.X) + "," + fnum(v.Y)
	}
	var prev, out math32.Vector2
	first := true
	addSegment := func(seg *Segment, skipLine bool) {
		cur := seg.point
		if first {
			b.WriteString("M" + fpair(cur))
			first = false
		} else {
			in := seg.AbsoluteHandleIn()
			if in == cur && out == prev {
				if !skipLine {
					d := cur.Sub(prev)
					switch {
					case d.X == 0:
						b.WriteString("v" + fnum(d.Y))
					case d.Y == 0:
						b.WriteString("h" + fnum(d.X))
					default:
						b.WriteString("l" + fpair(d))
					}
				}
			} else {
				b.WriteString("c" + fpair(out.Sub(prev)) + " " +
					fpair(in.Sub(prev)) + " " + fpair(cur.Sub(prev)))
			}
		}
		prev = cur
		out = seg.AbsoluteHandleOut()
	}
	for _, seg := range p.segments {
		addSegment(seg, false)
	}
	if p.closed && len(p.segments) > 0 {
		// re-emit the first segment to pick up the closing curve's
		// handles, but skip the line it would otherwise produce
		addSegment(p.segments[0], true)
		b.WriteString("z")
	}
	return b.String()
}

////////  parsing

// ParsePathData parses an SVG path-data string into paths registered
// in the given context, one per subpath: every M or m command, and
// every drawing command following a z, starts a new path. The
// commands M, L, H, V, C, S, Q, T, A, and Z are supported in both
// absolute and relative form.
func ParsePathData(ctx *Context, data string) ([]*Path, error) {
	pp := &pathParser{ctx: ctx, b: []byte(data)}
	if err := pp.parse(); err != nil {
		for _, p := range pp.paths {
			p.Destroy()
		}
		return nil, err
	}
	return pp.paths, nil
}

// PathFromData parses an SVG path-data string describing a single
// subpath into a new path. It is an error for the data to contain
// more than one subpath; use [ParsePathData] for those.
func PathFromData(ctx *Context, data string) (*Path, error) {
	paths, err := ParsePathData(ctx, data)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return NewPath(ctx), nil
	}
	if len(paths) > 1 {
		for _, p := range paths {
			p.Destroy()
		}
		return nil, fmt.Errorf("scene: path data contains %d subpaths, expected one", len(paths))
	}
	return paths[0], nil
}

// pathParser is the state of one [ParsePathData] run: the input
// bytes, the paths produced so far, and the current, control, and
// subpath start points the SVG commands are defined against.
type pathParser struct {
	ctx   *Context
	b     []byte
	pos   int
	paths []*Path
	cur   *Path

	current math32.Vector2
	control math32.Vector2 // last cubic/quad control point, for S/T
	start   math32.Vector2 // subpath start, for Z
	lastCmd byte

	hasCurrent bool
	afterClose bool
}

func (pp *pathParser) parse() error {
	for {
		pp.skipSep()
		if pp.pos >= len(pp.b) {
			return nil
		}
		cmd := pp.b[pp.pos]
		pp.pos++
		if err := pp.command(cmd); err != nil {
			return err
		}
		pp.lastCmd = cmd
	}
}

func (pp *pathParser) command(cmd byte) error {
	rel := cmd >= 'a' && cmd <= 'z'
	if rel && !pp.hasCurrent && cmd != 'm' && cmd != 'z' {
		return fmt.Errorf("scene: relative path command %q with no current point", cmd)
	}
	if cmd != 'M' && cmd != 'm' && cmd != 'Z' && cmd != 'z' && pp.cur == nil {
		return fmt.Errorf("scene: path data must begin with a moveto command, got %q", cmd)
	}
	switch cmd {
	case 'M', 'm':
		first := true
		for first || pp.hasMore() {
			pt, err := pp.pair(rel)
			if err != nil {
				return err
			}
			if first {
				pp.moveTo(pt)
			} else {
				// extra coordinate pairs are implicit linetos
				pp.lineTo(pt)
			}
			first = false
		}
	case 'L', 'l':
		for ok := true; ok; ok = pp.hasMore() {
			pt, err := pp.pair(rel)
			if err != nil {
				return err
			}
			pp.lineTo(pt)
		}
	case 'H', 'h':
		for ok := true; ok; ok = pp.hasMore() {
			x, err := pp.number()
			if err != nil {
				return err
			}
			if rel {
				x += pp.current.X
			}
			pp.lineTo(math32.Vec2(x, pp.current.Y))
		}
	case 'V', 'v':
		for ok := true; ok; ok = pp.hasMore() {
			y, err := pp.number()
			if err != nil {
				return err
			}
			if rel {
				y += pp.current.Y
			}
			pp.lineTo(math32.Vec2(pp.current.X, y))
		}
	case 'C', 'c':
		for ok := true; ok; ok = pp.hasMore() {
			h1, err := pp.pair(rel)
			if err != nil {
				return err
			}
			h2, err := pp.pair(rel)
			if err != nil {
				return err
			}
			to, err := pp.pair(rel)
			if err != nil {
				return err
			}
			if err := pp.cubicTo(h1, h2, to); err != nil {
				return err
			}
		}
	case 'S', 's':
		for ok := true; ok; ok = pp.hasMore() {
			h1 := pp.reflected('C', 'S')
			h2, err := pp.pair(rel)
			if err != nil {
				return err
			}
			to, err := pp.pair(rel)
			if err != nil {
				return err
			}
			if err := pp.cubicTo(h1, h2, to); err != nil {
				return err
			}
			pp.lastCmd = 'S' // smooth chains reflect the previous h2
		}
	case 'Q', 'q':
		for ok := true; ok; ok = pp.hasMore() {
			h, err := pp.pair(rel)
			if err != nil {
				return err
			}
			to, err := pp.pair(rel)
			if err != nil {
				return err
			}
			if err := pp.quadTo(h, to); err != nil {
				return err
			}
		}
	case 'T', 't':
		for ok := true; ok; ok = pp.hasMore() {
			h := pp.reflected('Q', 'T')
			to, err := pp.pair(rel)
			if err != nil {
				return err
			}
			if err := pp.quadTo(h, to); err != nil {
				return err
			}
			pp.lastCmd = 'T'
		}
	case 'A', 'a':
		for ok := true; ok; ok = pp.hasMore() {
			rx, err := pp.number()
			if err != nil {
				return err
			}
			ry, err := pp.number()
			if err != nil {
				return err
			}
			rot, err := pp.number()
			if err != nil {
				return err
			}
			large, err := pp.flag()
			if err != nil {
				return err
			}
			sweep, err := pp.flag()
			if err != nil {
				return err
			}
			to, err := pp.pair(rel)
			if err != nil {
				return err
			}
			pp.ensurePath()
			if err := pp.cur.ArcTo(rx, ry, rot, large, sweep, to); err != nil {
				return err
			}
			pp.current = to
			pp.control = to
		}
	case 'Z', 'z':
		if pp.cur != nil {
			pp.cur.ClosePath()
		}
		pp.current = pp.start
		pp.control = pp.current
		pp.afterClose = true
	default:
		return fmt.Errorf("scene: invalid path command %q", cmd)
	}
	return nil
}

// moveTo starts a new subpath, and with it a new path.
func (pp *pathParser) moveTo(pt math32.Vector2) {
	pp.cur = NewPath(pp.ctx)
	pp.paths = append(pp.paths, pp.cur)
	pp.cur.MoveTo(pt)
	pp.current = pt
	pp.control = pt
	pp.start = pt
	pp.hasCurrent = true
	pp.afterClose = false
}

// ensurePath starts a new subpath at the current point when a drawing
// command follows a close.
func (pp *pathParser) ensurePath() {
	if pp.afterClose {
		pp.moveTo(pp.current)
	}
}

func (pp *pathParser) lineTo(pt math32.Vector2) {
	pp.ensurePath()
	pp.cur.LineTo(pt)
	pp.current = pt
	pp.control = pt
}

func (pp *pathParser) cubicTo(h1, h2, to math32.Vector2) error {
	pp.ensurePath()
	if err := pp.cur.CubicTo(h1, h2, to); err != nil {
		return err
	}
	pp.current = to
	pp.control = h2
	return nil
}

func (pp *pathParser) quadTo(h, to math32.Vector2) error {
	pp.ensurePath()
	if err := pp.cur.QuadTo(h, to); err != nil {
		return err
	}
	pp.current = to
	pp.control = h
	return nil
}

// reflected returns the control point for a smooth command: the
// previous control point mirrored across the current point if the
// previous command was of the matching family, else the current
// point.
func (pp *pathParser) reflected(abs1, abs2 byte) math32.Vector2 {
	switch pp.lastCmd {
	case abs1, abs2, abs1 + 'a' - 'A', abs2 + 'a' - 'A':
		return pp.current.MulScalar(2).Sub(pp.control)
	}
	return pp.current
}

// skipSep advances past whitespace and commas.
func (pp *pathParser) skipSep() {
	for pp.pos < len(pp.b) {
		switch pp.b[pp.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			pp.pos++
		default:
			return
		}
	}
}

// hasMore reports whether another parameter group follows for the
// same command: the next token starts a number rather than a command
// letter.
func (pp *pathParser) hasMore() bool {
	pp.skipSep()
	if pp.pos >= len(pp.b) {
		return false
	}
	switch c := pp.b[pp.pos]; {
	case c >= '0' && c <= '9', c == '-', c == '+', c == '.':
		return true
	}
	return false
}

// number scans one coordinate value.
func (pp *pathParser) number() (float32, error) {
	pp.skipSep()
	f, n := pstrconv.ParseFloat(pp.b[pp.pos:])
	if n == 0 {
		return 0, fmt.Errorf("scene: invalid number in path data at offset %d", pp.pos)
	}
	pp.pos += n
	return float32(f), nil
}

// pair scans one coordinate pair, made absolute if rel.
func (pp *pathParser) pair(rel bool) (math32.Vector2, error) {
	x, err := pp.number()
	if err != nil {
		return math32.Vector2{}, err
	}
	y, err := pp.number()
	if err != nil {
		return math32.Vector2{}, err
	}
	pt := math32.Vec2(x, y)
	if rel && pp.hasCurrent {
		pt.SetAdd(pp.current)
	}
	return pt, nil
}

// flag scans one arc flag, a single 0 or 1 digit per the SVG grammar,
// which permits the digits to run together with the next number.
func (pp *pathParser) flag() (bool, error) {
	pp.skipSep()
	if pp.pos < len(pp.b) {
		switch pp.b[pp.pos] {
		case '0':
			pp.pos++
			return false, nil
		case '1':
			pp.pos++
			return true, nil
		}
	}
	return false, fmt.Errorf("scene: invalid arc flag in path data at offset %d", pp.pos)
}
