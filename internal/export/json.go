package export

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/san-kum/sandfall/internal/grid"
)

// cellRunes encodes one material per character in GridData.Rows.
var cellRunes = map[grid.Material]byte{
	grid.Empty:       '.',
	grid.Solid:       '#',
	grid.Particulate: 'o',
}

type GridData struct {
	Scenario string             `json:"scenario,omitempty"`
	Size     int                `json:"size"`
	Steps    int                `json:"steps"`
	Rows     []string           `json:"rows"`
	Counts   map[string]int     `json:"counts"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

func NewGridData(g *grid.Grid) GridData {
	n := g.Size()
	data := GridData{
		Size:   n,
		Rows:   make([]string, n),
		Counts: make(map[string]int),
	}
	for y := 0; y < n; y++ {
		var row strings.Builder
		for x := 0; x < n; x++ {
			row.WriteByte(cellRunes[g.Get(x, y)])
		}
		data.Rows[y] = row.String()
	}
	for _, m := range []grid.Material{grid.Empty, grid.Solid, grid.Particulate} {
		data.Counts[m.String()] = g.Count(m)
	}
	return data
}

// ParseRows rebuilds a grid from the Rows encoding. Unknown characters and
// missing cells read as empty.
func ParseRows(rows []string) *grid.Grid {
	g := grid.New(len(rows))
	for y, row := range rows {
		for x := 0; x < len(row) && x < len(rows); x++ {
			for m, c := range cellRunes {
				if row[x] == c && m != grid.Empty {
					g.SetBlock(x, y, 1, m)
				}
			}
		}
	}
	return g
}

func WriteJSON(w io.Writer, data GridData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, data GridData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func WriteSVG(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
