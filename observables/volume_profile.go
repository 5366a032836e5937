package observables

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/cdt3d/mesh"
)

// VolumeProfile records the (3,1) count of every slice, one space-joined
// row per measurement.
type VolumeProfile struct {
	w *Writer
}

// NewVolumeProfile binds the profile to a writer.
func NewVolumeProfile(w *Writer) *VolumeProfile {
	return &VolumeProfile{w: w}
}

func (*VolumeProfile) Name() string { return "volume_profile" }

// Measure appends the current slice volume row.
func (p *VolumeProfile) Measure(u *mesh.Universe) error {
	sizes := u.SliceSizes()
	fields := make([]string, len(sizes))
	for i, n := range sizes {
		fields[i] = strconv.Itoa(n)
	}
	return p.w.Append(p.Name(), strings.Join(fields, " "))
}
