package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"

	"github.com/san-kum/quickreturn/internal/linkage"
)

// frameImage rasterises the canvas into a two-color GIF frame.
func frameImage(c *Canvas) *image.Paletted {
	const charW, charH = 8, 16
	dotW, dotH := charW/2, charH/4
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), color.Palette{color.Black, color.White})

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := c.Grid[row][col]
			if pattern <= brailleBlank {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					baseX, baseY := col*charW+dx*dotW, row*charH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+px, baseY+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

// EncodeGIF writes frames as a looping animation; delay is in 1/100 s.
func EncodeGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("viz: no frames to encode")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// crankStep is the per-frame increment of θ2 for n frames per revolution,
// signed by the direction of rotation.
func crankStep(omega2 float64, n int) float64 {
	step := 2 * math.Pi / float64(n)
	if omega2 < 0 {
		return -step
	}
	return step
}

// frames draws one revolution starting at theta0 and calls emit for every
// angle that closes. Angles that fail are logged and skipped.
func frames(m *linkage.Mechanism, theta0 float64, emit func(i int, c *Canvas, sol linkage.Solution) error) error {
	cfg := m.Config()
	c := NewCanvas(canvasWidth, canvasHeight)
	v := FitView(cfg.Geometry, c, 72)
	step := crankStep(cfg.Omega2, cfg.Samples)

	for i := 0; i < cfg.Samples; i++ {
		theta2 := theta0 + float64(i)*step
		sol, err := m.Solution(theta2)
		if err != nil {
			linkage.Logger().Warn("skipping frame", "frame", i, "err", err)
			continue
		}
		c.Clear()
		DrawMechanism(c, v, cfg.Geometry, sol)
		if err := emit(i, c, sol); err != nil {
			return err
		}
	}
	return nil
}

// RecordGIF writes one revolution as a GIF animation.
func RecordGIF(w io.Writer, m *linkage.Mechanism, theta0 float64, fps int) error {
	var imgs []*image.Paletted
	err := frames(m, theta0, func(_ int, c *Canvas, _ linkage.Solution) error {
		imgs = append(imgs, frameImage(c))
		return nil
	})
	if err != nil {
		return err
	}
	return EncodeGIF(w, imgs, gifDelay(fps))
}

// StreamAnimation writes one revolution as plain text frames, each preceded by
// a header line with the frame index and the solved values.
func StreamAnimation(w io.Writer, m *linkage.Mechanism, theta0 float64) error {
	return frames(m, theta0, func(i int, c *Canvas, sol linkage.Solution) error {
		if _, err := fmt.Fprintf(w, "# frame %d theta2=%.6f r6=%.6f r6_dot=%.6f\n", i, sol.Theta2, sol.R6, sol.R6Dot); err != nil {
			return err
		}
		_, err := io.WriteString(w, c.String())
		return err
	})
}

func gifDelay(fps int) int {
	if fps <= 0 {
		return 4
	}
	d := 100 / fps
	if d < 2 {
		d = 2
	}
	return d
}

func writeGIFFile(path string, m *linkage.Mechanism, theta0 float64, fps int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RecordGIF(f, m, theta0, fps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
