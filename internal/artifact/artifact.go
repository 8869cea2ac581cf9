package artifact

import (
	"fmt"
	"path/filepath"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Name identifies one golden reference tensor.
type Name string

// Declared artifacts. The kinetic and recoil energies are the sampling grids;
// the pumas_* tables are the reference outputs of the corresponding DCS and
// transport computations.
const (
	KineticEnergies Name = "kinetic_energies"
	RecoilEnergies  Name = "recoil_energies"

	PumasBrems    Name = "pumas_brems"
	PumasBremsDEL Name = "pumas_brems_del"
	PumasBremsCEL Name = "pumas_brems_cel"

	PumasPprod    Name = "pumas_pprod"
	PumasPprodDEL Name = "pumas_pprod_del"
	PumasPprodCEL Name = "pumas_pprod_cel"

	PumasPhoto    Name = "pumas_photo"
	PumasPhotoDEL Name = "pumas_photo_del"
	PumasPhotoCEL Name = "pumas_photo_cel"

	PumasIon    Name = "pumas_ion"
	PumasIonDEL Name = "pumas_ion_del"
	PumasIonCEL Name = "pumas_ion_cel"

	PumasScreening   Name = "pumas_screening"
	PumasInvLambda   Name = "pumas_invlambda"
	PumasTransport   Name = "pumas_transport"
	PumasMu0         Name = "pumas_mu0"
	PumasLbH         Name = "pumas_lb_h"
	PumasSoftScatter Name = "pumas_soft_scatter"
)

// DefaultExt is the file extension of an artifact's default path.
const DefaultExt = ".pt"

// declared holds every artifact in load order.
var declared = []Name{
	KineticEnergies,
	RecoilEnergies,
	PumasBrems,
	PumasBremsDEL,
	PumasBremsCEL,
	PumasPprod,
	PumasPprodDEL,
	PumasPprodCEL,
	PumasPhoto,
	PumasPhotoDEL,
	PumasPhotoCEL,
	PumasIon,
	PumasIonDEL,
	PumasIonCEL,
	PumasScreening,
	PumasInvLambda,
	PumasTransport,
	PumasMu0,
	PumasLbH,
	PumasSoftScatter,
}

var known = sets.New(declared...)

// Names returns every declared artifact in load order. The returned slice is
// a copy and may be modified by the caller.
func Names() []Name {
	return slices.Clone(declared)
}

// IsValid reports whether n is a declared artifact.
func (n Name) IsValid() bool {
	return known.Has(n)
}

// String returns the artifact name.
func (n Name) String() string {
	return string(n)
}

// DefaultPath returns the conventional location of n under dataDir.
func (n Name) DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, string(n)+DefaultExt)
}

// Parse converts s into a declared Name.
func Parse(s string) (Name, error) {
	n := Name(s)
	if !n.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return n, nil
}

// DefaultTable returns the path table that places every artifact at its
// default location under dataDir.
func DefaultTable(dataDir string) map[Name]string {
	table := make(map[Name]string, len(declared))
	for _, n := range declared {
		table[n] = n.DefaultPath(dataDir)
	}
	return table
}
