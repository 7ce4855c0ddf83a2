package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderSpan renders a manager's direct reports against the span of control
// threshold, like [████░░] 4/6. The bar is green below two thirds of the
// threshold, yellow up to it and red beyond it.
func RenderSpan(count, threshold, width int) string {
	if width < 2 {
		width = 2
	}
	if threshold < 1 {
		threshold = 1
	}

	pct := float64(count) / float64(threshold)
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case count > threshold:
		style = StyleRed
	case pct >= 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), count, threshold)
}
