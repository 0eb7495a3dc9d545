package sanitize

// Bullet glyphs commonly produced by PDF text extraction of resumes, in
// tie-break order for DescriptionsFromLines.
const (
	BulletDotOperator   = '⋅'
	BulletOperator      = '∙'
	BulletThreeQuarter  = '🞄'
	BulletRound         = '•'
	BulletZNotation     = '⦁'
	BulletMediumCircle  = '⚫'
	BulletBlackCircle   = '●'
	BulletLargeCircle   = '⬤'
	BulletMediumWhite   = '⚬'
	BulletWhiteCircle   = '○'
	textPresentationSel = '\uFE0E'
)

// BulletSet is the alphabet of bullet glyphs preserved by Clean. Glyphs are
// ordered; modifiers are preserved but never treated as bullets on their own.
// The zero value preserves nothing.
type BulletSet struct {
	glyphs  []rune
	allowed map[rune]struct{}
}

// NewBulletSet builds a set from the given glyphs, keeping their order.
func NewBulletSet(glyphs ...rune) BulletSet {
	b := BulletSet{allowed: make(map[rune]struct{}, len(glyphs))}
	return b.With(glyphs...)
}

// DefaultBullets returns the resume bullet alphabet. The text presentation
// selector that follows ⚫ in some PDFs is preserved as a modifier.
func DefaultBullets() BulletSet {
	return NewBulletSet(
		BulletDotOperator,
		BulletOperator,
		BulletThreeQuarter,
		BulletRound,
		BulletZNotation,
		BulletMediumCircle,
		BulletBlackCircle,
		BulletLargeCircle,
		BulletMediumWhite,
		BulletWhiteCircle,
	).WithModifiers(textPresentationSel)
}

// With returns a copy of the set with extra glyphs appended. Glyphs already
// present keep their original position.
func (b BulletSet) With(glyphs ...rune) BulletSet {
	out := b.clone()
	for _, g := range glyphs {
		if _, ok := out.allowed[g]; ok {
			continue
		}
		out.allowed[g] = struct{}{}
		out.glyphs = append(out.glyphs, g)
	}
	return out
}

// WithModifiers returns a copy of the set that also preserves the given runes
// without treating them as bullets.
func (b BulletSet) WithModifiers(mods ...rune) BulletSet {
	out := b.clone()
	for _, m := range mods {
		out.allowed[m] = struct{}{}
	}
	return out
}

// Contains reports whether r is preserved by the set.
func (b BulletSet) Contains(r rune) bool {
	_, ok := b.allowed[r]
	return ok
}

// IsBullet reports whether r is one of the set's bullet glyphs.
func (b BulletSet) IsBullet(r rune) bool {
	for _, g := range b.glyphs {
		if g == r {
			return true
		}
	}
	return false
}

// Glyphs returns the bullet glyphs in order.
func (b BulletSet) Glyphs() []rune {
	return append([]rune(nil), b.glyphs...)
}

func (b BulletSet) clone() BulletSet {
	out := BulletSet{
		glyphs:  append([]rune(nil), b.glyphs...),
		allowed: make(map[rune]struct{}, len(b.allowed)),
	}
	for r := range b.allowed {
		out.allowed[r] = struct{}{}
	}
	return out
}
