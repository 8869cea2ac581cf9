package dcsdata

import "github.com/noa-physics/dcsdata/internal/artifact"

// Name identifies one golden reference tensor. The set of names is fixed;
// see the constants below.
//
// Name is a type alias so that the IsValid and String methods of
// [artifact.Name] are part of the public API.
type Name = artifact.Name

// DefaultExt is the file extension of an artifact's default path.
const DefaultExt = artifact.DefaultExt

// Declared artifacts, in load order.
const (
	// KineticEnergies is the kinetic-energy sampling grid.
	KineticEnergies = artifact.KineticEnergies
	// RecoilEnergies is the recoil-energy sampling grid.
	RecoilEnergies = artifact.RecoilEnergies

	// Bremsstrahlung DCS and its discrete/continuous energy-loss splits.
	PumasBrems    = artifact.PumasBrems
	PumasBremsDEL = artifact.PumasBremsDEL
	PumasBremsCEL = artifact.PumasBremsCEL

	// Pair-production DCS.
	PumasPprod    = artifact.PumasPprod
	PumasPprodDEL = artifact.PumasPprodDEL
	PumasPprodCEL = artifact.PumasPprodCEL

	// Photonuclear DCS.
	PumasPhoto    = artifact.PumasPhoto
	PumasPhotoDEL = artifact.PumasPhotoDEL
	PumasPhotoCEL = artifact.PumasPhotoCEL

	// Ionisation DCS.
	PumasIon    = artifact.PumasIon
	PumasIonDEL = artifact.PumasIonDEL
	PumasIonCEL = artifact.PumasIonCEL

	// Elastic scattering and transport quantities.
	PumasScreening   = artifact.PumasScreening
	PumasInvLambda   = artifact.PumasInvLambda
	PumasTransport   = artifact.PumasTransport
	PumasMu0         = artifact.PumasMu0
	PumasLbH         = artifact.PumasLbH
	PumasSoftScatter = artifact.PumasSoftScatter
)

// Names returns every declared artifact in load order.
func Names() []Name {
	return artifact.Names()
}

// ParseName converts s into a declared Name. It returns an error matching
// ErrUnknownArtifact if s is not declared.
func ParseName(s string) (Name, error) {
	return artifact.Parse(s)
}
