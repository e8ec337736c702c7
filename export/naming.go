package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/karpathyan/asd2vtk/vtu"
)

const DefaultPrefix = "outfile"

// Naming derives output file names from the source vector file:
// <Dir>/<Prefix>_<stem>_<step><Extension>
type Naming struct {
	Prefix    string
	Source    string
	Dir       string
	Extension string
}

// Stem is the source base name without its final extension
func (n Naming) Stem() string {
	base := filepath.Base(n.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (n Naming) FileName(step int) string {
	var (
		prefix = n.Prefix
		ext    = n.Extension
	)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ext == "" {
		ext = vtu.Extension
	}
	return filepath.Join(n.Dir, fmt.Sprintf("%s_%s_%d%s", prefix, n.Stem(), step, ext))
}
