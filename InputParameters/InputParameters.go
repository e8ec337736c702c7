package InputParameters

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/karpathyan/asd2vtk/readers"
)

type Mode string

const (
	Snapshot Mode = "snapshot"
	Series   Mode = "series"
)

func NewMode(label string) (m Mode, err error) {
	switch Mode(strings.ToLower(strings.TrimSpace(label))) {
	case Snapshot, "":
		return Snapshot, nil
	case Series, "timeseries", "dynamics":
		return Series, nil
	}
	return "", fmt.Errorf("unknown mode %q, use %q or %q", label, Snapshot, Series)
}

// DefaultFieldPrefix is the vector file kind discovered when none is named
func (m Mode) DefaultFieldPrefix() string {
	if m == Series {
		return "moment"
	}
	return "restart"
}

// Parameters obtained from the YAML input file and command line
type ConvertParameters struct {
	Title              string                `json:"Title"`
	Mode               Mode                  `json:"Mode"`
	Tool               string                `json:"Tool"`
	Directory          string                `json:"Directory"`  // Searched when files are not named
	CoordFile          string                `json:"CoordFile"`  // Discovered with the tool's pattern when empty
	VectorFile         string                `json:"VectorFile"` // Discovered from the mode's prefix when empty
	OutputDir          string                `json:"OutputDir"`
	OutputPrefix       string                `json:"OutputPrefix"`
	Workers            int                   `json:"Workers"` // Zero means one per CPU
	ReplicatePointData bool                  `json:"ReplicatePointData"`
	CheckOrientation   bool                  `json:"CheckOrientation"`
	Tools              []*readers.ToolLayout `json:"Tools"` // Layouts added to the built-in table
}

func NewConvertParameters() *ConvertParameters {
	return &ConvertParameters{
		Mode:         Snapshot,
		Tool:         readers.DefaultTool,
		OutputPrefix: "outfile",
	}
}

func (ip *ConvertParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.Mode, err = NewMode(string(ip.Mode)); err != nil {
		return
	}
	for i, tl := range ip.Tools {
		if tl == nil {
			return fmt.Errorf("Tools[%d] is empty", i)
		}
		if err = tl.Validate(); err != nil {
			return
		}
	}
	return
}

// ToolTable returns the built-in layouts extended by the parsed ones
func (ip *ConvertParameters) ToolTable() readers.ToolTable {
	tt := readers.DefaultTools()
	for _, tl := range ip.Tools {
		tt.Add(tl)
	}
	return tt
}

func (ip *ConvertParameters) Print(w io.Writer) {
	show := func(s string) string {
		if s == "" {
			return "(discover)"
		}
		return s
	}
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Mode\n", ip.Mode)
	fmt.Fprintf(w, "[%s]\t\t= Tool\n", ip.Tool)
	fmt.Fprintf(w, "[%s]\t= Coordinate File\n", show(ip.CoordFile))
	fmt.Fprintf(w, "[%s]\t= Vector File\n", show(ip.VectorFile))
	fmt.Fprintf(w, "[%s]\t\t= Output Prefix\n", ip.OutputPrefix)
	fmt.Fprintf(w, "[%d]\t\t\t= Workers\n", ip.Workers)
	fmt.Fprintf(w, "[%v]\t\t= Replicate Point Data\n", ip.ReplicatePointData)
	for _, tl := range ip.Tools {
		fmt.Fprintf(w, "Tools[%s] = %v\n", tl.Name, *tl)
	}
}
