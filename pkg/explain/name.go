package explain

// NameKind discriminates the variants of [FeatureName].
type NameKind uint8

const (
	NamePlain     NameKind = iota // ordinary name, spaces are significant
	NameFormatted                 // pre-formatted, displayed verbatim
	NameHashed                    // collided hashing-trick bucket
)

// String returns a lowercase label for k.
func (k NameKind) String() string {
	switch k {
	case NamePlain:
		return "plain"
	case NameFormatted:
		return "formatted"
	case NameHashed:
		return "hashed"
	default:
		return "unknown"
	}
}

// HashedPart is one raw feature that landed in a hashed bucket.
// Sign is +1 or -1 depending on which way the hash function flipped it.
type HashedPart struct {
	Name string
	Sign int
}

// FeatureName is a feature name in one of three display variants.
// The zero value is the plain empty name.
type FeatureName struct {
	Kind  NameKind
	Text  string       // plain or formatted text; unused for NameHashed
	Parts []HashedPart // NameHashed only
}

// Plain returns an ordinary feature name.
func Plain(s string) FeatureName {
	return FeatureName{Kind: NamePlain, Text: s}
}

// Formatted returns a name that renderers must display unchanged.
func Formatted(s string) FeatureName {
	return FeatureName{Kind: NameFormatted, Text: s}
}

// Hashed returns a name for a bucket aggregating the given parts, in order.
func Hashed(parts ...HashedPart) FeatureName {
	return FeatureName{Kind: NameHashed, Parts: parts}
}
