package lammps

import (
	"strings"

	"github.com/vk/sfegridgo/internal/lattice"
)

// StructureFileName returns the engine-facing data file name for a
// variant, e.g. structure_fcc.data. The MD input scripts read these names
// verbatim.
func StructureFileName(v lattice.Variant) string {
	return "structure_" + strings.ToLower(v.String()) + ".data"
}
