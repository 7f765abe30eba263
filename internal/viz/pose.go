package viz

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/quickreturn/internal/export"
	"github.com/san-kum/quickreturn/internal/linkage"
)

const (
	canvasWidth  = 60
	canvasHeight = 20
)

// readout lists the solved values with unit labels.
func (st styles) readout(cfg linkage.Config, sol linkage.Solution) string {
	u := cfg.Units
	rows := []struct{ label, value string }{
		{"theta2", fmt.Sprintf("%8.2f deg", sol.Theta2*180/math.Pi)},
		{"theta4", fmt.Sprintf("%8.2f deg", sol.Theta4*180/math.Pi)},
		{"theta5", fmt.Sprintf("%8.2f deg", sol.Theta5*180/math.Pi)},
		{"r3", fmt.Sprintf("%8.5f %s", sol.R3, u.Length())},
		{"slider", fmt.Sprintf("%8.5f %s", sol.R6, u.Length())},
		{"omega2", fmt.Sprintf("%8.3f rad/s", sol.Omega2)},
		{"omega4", fmt.Sprintf("%8.3f rad/s", sol.Omega4)},
		{"omega5", fmt.Sprintf("%8.3f rad/s", sol.Omega5)},
		{"slider v", fmt.Sprintf("%8.4f %s", sol.R6Dot, u.Speed())},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(st.label.Render(r.label) + st.value.Render(r.value) + "\n")
	}
	return b.String()
}

// PoseCard renders one pose next to its solved values.
func PoseCard(cfg linkage.Config, sol linkage.Solution, theme Theme) string {
	st := theme.styles()
	c := NewCanvas(canvasWidth, canvasHeight)
	DrawMechanism(c, FitView(cfg.Geometry, c, 72), cfg.Geometry, sol)

	header := st.header.Render(fmt.Sprintf("QUICK RETURN  %s  %s", cfg.Assembly, strings.ToUpper(cfg.Units.String())))
	panel := st.panel.Render(header + "\n" + st.readout(cfg, sol))
	return lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(c.String()), panel)
}

// DisplayPosition renders the mechanism at theta2 to out.
func DisplayPosition(m *linkage.Mechanism, theta2 float64, out Output) error {
	if err := out.Validate(); err != nil {
		return err
	}
	cfg := m.Config()
	sol, err := m.Solution(theta2)
	if err != nil {
		return err
	}

	switch out.Target {
	case Display:
		_, err = fmt.Fprintln(out.writer(), PoseCard(cfg, sol, ThemeByName(out.Theme)))
		return err
	case Stream:
		c := NewCanvas(canvasWidth, canvasHeight)
		DrawMechanism(c, FitView(cfg.Geometry, c, 72), cfg.Geometry, sol)
		w := out.writer()
		if _, err := fmt.Fprint(w, c.String()); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "theta2=%.6f theta4=%.6f theta5=%.6f r6=%.6f\n", sol.Theta2, sol.Theta4, sol.Theta5, sol.R6)
		return err
	case File:
		svg, err := export.MechanismSVG(cfg.Geometry, sol, 480, 480)
		if err != nil {
			return err
		}
		return os.WriteFile(out.Path, []byte(svg), 0644)
	}
	return fmt.Errorf("unknown output: %v", out.Target)
}
