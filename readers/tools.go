package readers

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedTool is returned for a simulation tool with no column layout
var ErrUnsupportedTool = errors.New("unsupported simulation tool")

const DefaultTool = "UppASD"

// Columns are the zero-based X, Y and Z column indices of a table
type Columns [3]int

// UnmarshalJSON rejects column lists that do not hold exactly three entries
func (c *Columns) UnmarshalJSON(data []byte) error {
	var cols []int
	if err := json.Unmarshal(data, &cols); err != nil {
		return err
	}
	if len(cols) != len(c) {
		return fmt.Errorf("column list %v has %d entries, expected %d", cols, len(cols), len(c))
	}
	copy(c[:], cols)
	return nil
}

// FieldLayout locates the X, Y and Z vector components of one kind of
// vector file, identified by the file name prefix
type FieldLayout struct {
	Prefix  string  `json:"Prefix"`
	Columns Columns `json:"Columns"`
}

// ToolLayout describes the text output of one simulation tool
type ToolLayout struct {
	Name         string        `json:"Name"`
	CoordPattern string        `json:"CoordPattern"`
	CoordColumns Columns       `json:"CoordColumns"`
	Fields       []FieldLayout `json:"Fields"`
}

// ToolTable maps lower-cased tool names to layouts
type ToolTable map[string]*ToolLayout

// DefaultTools returns the built-in layouts
func DefaultTools() ToolTable {
	tt := ToolTable{}
	tt.Add(&ToolLayout{
		Name:         DefaultTool,
		CoordPattern: "coord.*.out",
		CoordColumns: Columns{1, 2, 3},
		Fields: []FieldLayout{
			{Prefix: "restart", Columns: Columns{4, 5, 6}},
			{Prefix: "moment", Columns: Columns{4, 5, 6}},
			{Prefix: "STT", Columns: Columns{4, 5, 6}},
		},
	})
	return tt
}

// Add registers tl, replacing any layout with the same name
func (tt ToolTable) Add(tl *ToolLayout) {
	tt[strings.ToLower(tl.Name)] = tl
}

func (tt ToolTable) Lookup(name string) (tl *ToolLayout, err error) {
	var ok bool
	if tl, ok = tt[strings.ToLower(name)]; !ok {
		err = fmt.Errorf("%w %q, supported tools: %s",
			ErrUnsupportedTool, name, strings.Join(tt.Names(), ", "))
	}
	return
}

// Names returns the registered tool names, sorted
func (tt ToolTable) Names() (names []string) {
	for _, tl := range tt {
		names = append(names, tl.Name)
	}
	sort.Strings(names)
	return
}

// Validate checks a layout loaded from user input
func (tl *ToolLayout) Validate() error {
	if tl.Name == "" {
		return fmt.Errorf("tool layout has no Name")
	}
	if tl.CoordPattern == "" {
		return fmt.Errorf("tool %s: CoordPattern is empty", tl.Name)
	}
	if _, err := filepath.Match(tl.CoordPattern, ""); err != nil {
		return fmt.Errorf("tool %s: CoordPattern %q: %v", tl.Name, tl.CoordPattern, err)
	}
	if len(tl.Fields) == 0 {
		return fmt.Errorf("tool %s: no Fields", tl.Name)
	}
	check := func(what string, cols Columns) error {
		for i, c := range cols {
			if c < 0 {
				return fmt.Errorf("tool %s: %s has negative column %d", tl.Name, what, c)
			}
			for _, other := range cols[:i] {
				if other == c {
					return fmt.Errorf("tool %s: %s repeats column %d", tl.Name, what, c)
				}
			}
		}
		return nil
	}
	if err := check("CoordColumns", tl.CoordColumns); err != nil {
		return err
	}
	for _, fl := range tl.Fields {
		if fl.Prefix == "" {
			return fmt.Errorf("tool %s: field layout has no Prefix", tl.Name)
		}
		if err := check(fl.Prefix, fl.Columns); err != nil {
			return err
		}
	}
	return nil
}

// FieldFor returns the layout matching the prefix of filename, the part of
// its base name before the first '.'
func (tl *ToolLayout) FieldFor(filename string) (fl FieldLayout, err error) {
	prefix := FilePrefix(filename)
	for _, fl = range tl.Fields {
		if fl.Prefix == prefix {
			return
		}
	}
	err = fmt.Errorf("tool %s has no column layout for %q files (%s), known prefixes: %s",
		tl.Name, prefix, filename, strings.Join(tl.prefixes(), ", "))
	return
}

// Field returns the layout registered for prefix
func (tl *ToolLayout) Field(prefix string) (fl FieldLayout, err error) {
	for _, fl = range tl.Fields {
		if fl.Prefix == prefix {
			return
		}
	}
	err = fmt.Errorf("tool %s has no %q field layout, known prefixes: %s",
		tl.Name, prefix, strings.Join(tl.prefixes(), ", "))
	return
}

// Pattern is the discovery glob for vector files of this kind
func (fl FieldLayout) Pattern() string {
	return fl.Prefix + ".*.out"
}

func (tl *ToolLayout) prefixes() (p []string) {
	for _, fl := range tl.Fields {
		p = append(p, fl.Prefix)
	}
	return
}

func FilePrefix(filename string) string {
	base := filepath.Base(filename)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}
