package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// Format names an output encoding for branch geometry.
type Format string

const (
	FormatOBJ  Format = "obj"
	FormatMEL  Format = "mel"
	FormatJSON Format = "json"
)

// DefaultRadius is the profile circle radius of extruded MEL branches.
const DefaultRadius = 0.1

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatOBJ, FormatMEL, FormatJSON}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want obj, mel or json)", s)
}

// Write encodes branches in the given format.
func Write(w io.Writer, format Format, branches []domain.Branch) error {
	switch format {
	case FormatOBJ:
		return WriteOBJ(w, branches)
	case FormatMEL:
		return WriteMEL(w, branches, DefaultRadius)
	case FormatJSON:
		return WriteJSON(w, branches)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteOBJ writes the branches as Wavefront OBJ polylines. Endpoints shared by several
// branches become a single vertex so the skeleton stays connected.
func WriteOBJ(w io.Writer, branches []domain.Branch) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# arbor %d branches\n", len(branches))

	index := make(map[r3.Vec]int, len(branches)+1)
	vertex := func(v r3.Vec) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(index) + 1 // OBJ indices are 1-based
		index[v] = i
		fmt.Fprintf(bw, "v %s %s %s\n", num(v.X), num(v.Y), num(v.Z))
		return i
	}

	lines := make([][2]int, len(branches))
	for i, b := range branches {
		lines[i] = [2]int{vertex(b.Start), vertex(b.End)}
	}
	for _, l := range lines {
		fmt.Fprintf(bw, "l %d %d\n", l[0], l[1])
	}
	return bw.Flush()
}

// WriteMEL writes a Maya MEL script that builds each branch as a degree-1 curve swept by a
// circle of the given radius. Objects are numbered from 1 in drawing order.
func WriteMEL(w io.Writer, branches []domain.Branch, radius float64) error {
	bw := bufio.NewWriter(w)
	r := num(radius)
	for i, b := range branches {
		label := i + 1
		s, e := b.Start, b.End
		n := b.Direction()
		fmt.Fprintf(bw, "curve -d 1 -p %s %s %s -p %s %s %s -k 0 -k 1 -name \"curve%d\";\n",
			num(s.X), num(s.Y), num(s.Z), num(e.X), num(e.Y), num(e.Z), label)
		fmt.Fprintf(bw, "circle -radius %s -nr %s %s %s -c %s %s %s -name \"nurbsCircle%d\";\n",
			r, num(n.X), num(n.Y), num(n.Z), num(s.X), num(s.Y), num(s.Z), label)
		fmt.Fprintf(bw, "select -r nurbsCircle%d curve%d;\n", label, label)
		fmt.Fprintf(bw, "extrude -ch true -rn false -po 1 -et 2 -rotation 0 -scale 1 -rsp 1 \"nurbsCircle%d\" \"curve%d\";\n",
			label, label)
	}
	return bw.Flush()
}

type document struct {
	Count    int             `json:"count"`
	Min      r3.Vec          `json:"min"`
	Max      r3.Vec          `json:"max"`
	Branches []domain.Branch `json:"branches"`
}

// WriteJSON writes the branches with their count and bounding box.
func WriteJSON(w io.Writer, branches []domain.Branch) error {
	if branches == nil {
		branches = []domain.Branch{}
	}
	box := domain.Bounds(branches)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{
		Count:    len(branches),
		Min:      box.Min,
		Max:      box.Max,
		Branches: branches,
	})
}

// num prints the shortest representation that round-trips, with -0 folded into 0.
func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
