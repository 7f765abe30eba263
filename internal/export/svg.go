package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/quickreturn/internal/linkage"
)

// BrailleToSVG converts a grid of braille runes to SVG dots.
func BrailleToSVG(grid [][]rune, scale float64) string {
	if len(grid) == 0 {
		return ""
	}

	width := float64(len(grid[0])) * scale * 2
	height := float64(len(grid)) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4
	for row := range grid {
		for col, r := range grid[row] {
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CurveSVG draws y against x as a polyline with 10% padding.
func CurveSVG(xs, ys []float64, width, height int, strokeColor, caption string) string {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 0; i < n; i++ {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if caption != "" {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">%s</text>
`, escape(caption)))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i := 0; i < n; i++ {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// MechanismSVG draws the links of one solved pose.
func MechanismSVG(g linkage.Geometry, sol linkage.Solution, width, height int) (string, error) {
	o2 := complex(g.R1*math.Cos(g.Theta1), g.R1*math.Sin(g.Theta1))
	var pts [3]complex128
	for i, p := range []linkage.Point{linkage.PointA, linkage.PointB, linkage.PointC} {
		z, err := sol.Point(g, p)
		if err != nil {
			return "", err
		}
		pts[i] = z
	}
	a, b, c := pts[0], pts[1], pts[2]

	all := []complex128{0, o2, a, b, c}
	minX, maxX := real(all[0]), real(all[0])
	minY, maxY := imag(all[0]), imag(all[0])
	for _, z := range all {
		minX, maxX = math.Min(minX, real(z)), math.Max(maxX, real(z))
		minY, maxY = math.Min(minY, imag(z)), math.Max(maxY, imag(z))
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	pad := span * 0.15
	scale := math.Min(float64(width), float64(height)) / (span + 2*pad)
	px := func(z complex128) (float64, float64) {
		return (real(z)-minX+pad)*scale, float64(height) - (imag(z)-minY+pad)*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// slider line
	axis := complex(math.Cos(g.SliderAxis()), math.Sin(g.SliderAxis()))
	l0x, l0y := px(c - axis*complex(span, 0))
	l1x, l1y := px(c + axis*complex(span, 0))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466" stroke-dasharray="4 3"/>
`, l0x, l0y, l1x, l1y))

	links := []struct {
		from, to complex128
		color    string
	}{
		{o2, a, "#ff00ff"},
		{0, b, "#00ffff"},
		{b, c, "#ffcc00"},
	}
	for _, l := range links {
		x0, y0 := px(l.from)
		x1, y1 := px(l.to)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3" stroke-linecap="round"/>
`, x0, y0, x1, y1, l.color))
	}

	for _, j := range []struct {
		at    complex128
		label string
	}{{0, "O4"}, {o2, "O2"}, {a, "A"}, {b, "B"}, {c, "C"}} {
		x, y := px(j.at)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#ffffff"/>
<text x="%.1f" y="%.1f" fill="#888899" font-family="monospace" font-size="11">%s</text>
`, x, y, x+6, y-6, j.label))
	}

	sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="#888899" font-family="monospace" font-size="12">theta2=%.1f deg  r6=%.5f</text>
`, height-8, sol.Theta2*180/math.Pi, sol.R6))
	sb.WriteString("</svg>")
	return sb.String(), nil
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
