// Package export renders simulation output to files.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/cbass-space/n-body/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// SVGOptions selects what WorldToSVG draws.
type SVGOptions struct {
	Trails      bool
	Predictions bool
	// Background is any SVG paint; empty means near-black.
	Background string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Trails: true, Predictions: true, Background: "#0a0a0a"}
}

// bounds is the world-space box every drawn point falls in.
type bounds struct {
	min, max mgl64.Vec2
	empty    bool
}

func (b *bounds) add(p mgl64.Vec2, r float64) {
	lo, hi := p.Sub(mgl64.Vec2{r, r}), p.Add(mgl64.Vec2{r, r})
	if b.empty {
		b.min, b.max, b.empty = lo, hi, false
		return
	}
	b.min = mgl64.Vec2{math.Min(b.min[0], lo[0]), math.Min(b.min[1], lo[1])}
	b.max = mgl64.Vec2{math.Max(b.max[0], hi[0]), math.Max(b.max[1], hi[1])}
}

// WorldToSVG draws bodies with their trails and predicted paths, scaled to
// fit width x height. World y grows downward, as on screen. Movable bodies
// are outlined and immovable ones filled.
func WorldToSVG(bodies []physics.Body, params physics.Params, width, height int, opts SVGOptions) string {
	if opts.Background == "" {
		opts.Background = "#0a0a0a"
	}

	box := bounds{empty: true}
	for i := range bodies {
		b := &bodies[i]
		box.add(b.Position, params.Radius(b.Mass))
		if opts.Trails {
			for _, p := range b.Trail.Points(0) {
				box.add(p, 0)
			}
		}
		if opts.Predictions {
			for _, p := range b.Prediction.Positions {
				box.add(p, 0)
			}
		}
	}
	if box.empty {
		box.min, box.max = mgl64.Vec2{0, 0}, mgl64.Vec2{float64(width), float64(height)}
	}

	// Add padding
	size := box.max.Sub(box.min)
	pad := math.Max(size[0], size[1])*0.05 + 1
	box.min = box.min.Sub(mgl64.Vec2{pad, pad})
	size = size.Add(mgl64.Vec2{2 * pad, 2 * pad})
	scale := math.Min(float64(width)/size[0], float64(height)/size[1])

	project := func(p mgl64.Vec2) (float64, float64) {
		return (p[0] - box.min[0]) * scale, (p[1] - box.min[1]) * scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, opts.Background))

	for i := range bodies {
		b := &bodies[i]
		color := b.Color.Hex()

		if opts.Trails {
			// Points are newest first; draw oldest to newest.
			pts := b.Trail.Points(0)
			for l, r := 0, len(pts)-1; l < r; l, r = l+1, r-1 {
				pts[l], pts[r] = pts[r], pts[l]
			}
			writePath(&sb, pts, project, fmt.Sprintf(`stroke="%s" stroke-width="1.5" stroke-opacity="0.6"`, color))
		}
		if opts.Predictions && b.Movable {
			pts := append([]mgl64.Vec2{b.Position}, b.Prediction.Positions...)
			writePath(&sb, pts, project, fmt.Sprintf(`stroke="%s" stroke-width="1" stroke-dasharray="4 3"`, color))
		}
	}

	for i := range bodies {
		b := &bodies[i]
		x, y := project(b.Position)
		r := math.Max(params.Radius(b.Mass)*scale, 1)
		if b.Movable {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>
`, x, y, r, b.Color.Hex()))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, b.Color.Hex()))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writePath(sb *strings.Builder, pts []mgl64.Vec2, project func(mgl64.Vec2) (float64, float64), style string) {
	if len(pts) < 2 {
		return
	}
	sb.WriteString(`<path fill="none" ` + style + ` d="M`)
	for i, p := range pts {
		x, y := project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}
