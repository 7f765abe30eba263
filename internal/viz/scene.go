package viz

import (
	"math"

	"github.com/san-kum/quickreturn/internal/linkage"
)

// View maps mechanism coordinates (origin at the rocker pivot O4) onto the
// sub-pixels of a canvas. Sub-pixels of a braille cell are close enough to
// square that one scale serves both axes.
type View struct {
	MinX, MinY float64
	Scale      float64
	W, H       int
}

// FitView sizes a view so the mechanism stays inside the canvas for a whole
// revolution. The extent is sampled at n crank angles; angles that do not
// close are left out.
func FitView(g linkage.Geometry, c *Canvas, n int) View {
	w, h := c.PixelSize()
	if n < 8 {
		n = 8
	}

	o2 := complex(g.R1*math.Cos(g.Theta1), g.R1*math.Sin(g.Theta1))
	pts := []complex128{0, o2}
	for i := 0; i < n; i++ {
		theta2 := 2 * math.Pi * float64(i) / float64(n)
		pos, err := linkage.SolvePosition(g, theta2)
		if err != nil {
			continue
		}
		for _, p := range []linkage.Point{linkage.PointA, linkage.PointB, linkage.PointC} {
			if z, err := pos.Point(g, p); err == nil {
				pts = append(pts, z)
			}
		}
	}

	minX, maxX := real(pts[0]), real(pts[0])
	minY, maxY := imag(pts[0]), imag(pts[0])
	for _, z := range pts {
		minX, maxX = math.Min(minX, real(z)), math.Max(maxX, real(z))
		minY, maxY = math.Min(minY, imag(z)), math.Max(maxY, imag(z))
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = g.R4
	}
	if spanY == 0 {
		spanY = g.R4
	}
	padX, padY := spanX*0.15, spanY*0.15
	scale := math.Min(float64(w-1)/(spanX+2*padX), float64(h-1)/(spanY+2*padY))

	// center the drawing
	minX -= (float64(w-1)/scale - spanX) / 2
	minY -= (float64(h-1)/scale - spanY) / 2

	return View{MinX: minX, MinY: minY, Scale: scale, W: w, H: h}
}

// Pixel returns the sub-pixel for a point in mechanism coordinates.
func (v View) Pixel(z complex128) (int, int) {
	x := (real(z) - v.MinX) * v.Scale
	y := float64(v.H-1) - (imag(z)-v.MinY)*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

// DrawMechanism draws one solved pose: ground pivots, crank, rocker with the
// sliding block, coupler, output slider and its guide line.
func DrawMechanism(c *Canvas, v View, g linkage.Geometry, sol linkage.Solution) {
	o2 := complex(g.R1*math.Cos(g.Theta1), g.R1*math.Sin(g.Theta1))
	a, _ := sol.Point(g, linkage.PointA)
	b, _ := sol.Point(g, linkage.PointB)
	cc, _ := sol.Point(g, linkage.PointC)

	line := func(p, q complex128) {
		x0, y0 := v.Pixel(p)
		x1, y1 := v.Pixel(q)
		c.DrawLine(x0, y0, x1, y1)
	}

	// slider guide across the whole view
	axis := complex(math.Cos(g.SliderAxis()), math.Sin(g.SliderAxis()))
	reach := complex(float64(v.W+v.H)/v.Scale, 0)
	gx0, gy0 := v.Pixel(cc - axis*reach)
	gx1, gy1 := v.Pixel(cc + axis*reach)
	c.DrawDashed(gx0, gy0, gx1, gy1, 2)

	line(o2, a)
	line(0, b)
	line(b, cc)

	for _, p := range []complex128{0, o2} {
		x, y := v.Pixel(p)
		c.DrawCircle(x, y, 2)
	}
	ax, ay := v.Pixel(a)
	c.DrawRect(ax-1, ay-1, ax+1, ay+1)
	cx, cy := v.Pixel(cc)
	c.DrawRect(cx-3, cy-2, cx+3, cy+2)
}
