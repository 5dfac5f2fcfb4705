package formatter

import (
	"fmt"
	"strings"
)

const (
	barFull  = "█"
	barEmpty = "░"
)

// RenderProgress draws a fixed-width bar like [████░░░░]  50%. The fill
// color tracks the value: red below a third, yellow up to two thirds,
// green above. pct is clamped to [0, 1].
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
