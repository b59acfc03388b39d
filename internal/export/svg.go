// Package export writes grids and pile profiles to portable formats.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/render"
)

// GridToSVG draws every non-empty cell as a scale x scale square on the
// theme's empty color.
func GridToSVG(g *grid.Grid, theme render.Theme, scale float64) string {
	if g == nil {
		return ""
	}
	side := float64(g.Size()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, side, side, side, side, render.FormatColor(theme.Empty)))

	for _, m := range []grid.Material{grid.Solid, grid.Particulate} {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", render.FormatColor(theme.Color(m))))
		for y := 0; y < g.Size(); y++ {
			for x := 0; x < g.Size(); x++ {
				if g.Get(x, y) != m {
					continue
				}
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(x)*scale, float64(y)*scale, scale, scale))
			}
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ProfileToSVG plots column heights as a polyline, column 0 on the left.
func ProfileToSVG(heights []float64, width, height int, strokeColor string) string {
	if len(heights) < 2 {
		return ""
	}

	maxH := 1.0
	for _, h := range heights {
		maxH = max(maxH, h)
	}
	stepX := float64(width) / float64(len(heights)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, h := range heights {
		x := float64(i) * stepX
		y := float64(height) - h/maxH*float64(height)
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
