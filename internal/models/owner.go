package models

// Owner identifies who an expense belongs to: one of the two household
// members or the shared "combined" pool. "noble" and "maria" are legacy
// identifiers for member1 and member2 kept for rows persisted before the
// members became configurable.
type Owner string

const (
	OwnerCombined Owner = "combined"
	OwnerMember1  Owner = "member1"
	OwnerMember2  Owner = "member2"

	// Legacy aliases.
	OwnerNoble Owner = "noble"
	OwnerMaria Owner = "maria"
)

// aliasPairs maps each member identifier to its equivalence set.
// "combined" is never aliased.
var aliasPairs = map[Owner][]Owner{
	OwnerMember1: {OwnerMember1, OwnerNoble},
	OwnerNoble:   {OwnerNoble, OwnerMember1},
	OwnerMember2: {OwnerMember2, OwnerMaria},
	OwnerMaria:   {OwnerMaria, OwnerMember2},
}

// AliasSet returns every raw identifier that must be treated as equivalent
// to o when filtering. Unknown values resolve to themselves so that
// arbitrary owner tags keep working as their own buckets.
func (o Owner) AliasSet() []Owner {
	if set, ok := aliasPairs[o]; ok {
		return set
	}
	return []Owner{o}
}

// Matches reports whether other is in o's alias set. Owner comparisons must
// go through this, never plain equality, or legacy rows fall out of view.
func (o Owner) Matches(other Owner) bool {
	for _, a := range o.AliasSet() {
		if a == other {
			return true
		}
	}
	return false
}

// IsMember1 reports whether o resolves to the first household member.
func (o Owner) IsMember1() bool {
	return o == OwnerMember1 || o == OwnerNoble
}

// Valid reports whether o is one of the five enumerated identifiers.
// Write boundaries enforce this; read filters deliberately do not.
func (o Owner) Valid() bool {
	switch o {
	case OwnerCombined, OwnerMember1, OwnerMember2, OwnerNoble, OwnerMaria:
		return true
	}
	return false
}
