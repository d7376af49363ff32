package shader

// Kind identifies one of the compiled programs of the ShaderSystem.
// The set is closed: adding a kind means extending this enumeration, Kinds and builtinSources.
type Kind int

const (
	// KindMesh is the lit mesh program (position + normal attributes). It is the program
	// bound when the ShaderSystem is created.
	KindMesh Kind = iota

	// KindFlat is the unlit single-colour program used for lines and the water surface.
	KindFlat

	// KindPoint is the round point-sprite program used for particle clouds.
	KindPoint

	kindCount
)

// Kinds returns every kind of the enumeration in declaration order.
//
// Returns:
//   - []Kind: the fixed set of shader kinds
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k belongs to the enumeration.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindFlat:
		return "flat"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}
