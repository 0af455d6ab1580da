package model

import "strings"

// MaxTeamSize is the exact size of a complete team.
const MaxTeamSize = 6

// FemaleGender is the gender token that satisfies the gender-balance rule.
const FemaleGender = "female"

// IsFemale reports whether gender resolves to the female token, ignoring case and surrounding space.
func IsFemale(gender string) bool {
	return strings.EqualFold(strings.TrimSpace(gender), FemaleGender)
}

// CanJoinPreservingFemaleRequirement reports whether a participant of gender joining
// may join a team whose current members have currentGenders, given maxSize slots.
//
// Only the final slot is gated: below maxSize-1 members anyone may join; at
// maxSize-1 the joiner must be female unless a female member is already
// present; a full team admits no one. A team can therefore stall at
// maxSize-1 members when no female candidate applies.
func CanJoinPreservingFemaleRequirement(currentGenders []string, joining string, maxSize int) bool {
	size := len(currentGenders)
	switch {
	case size < maxSize-1:
		return true
	case size == maxSize-1:
		return HasFemale(currentGenders) || IsFemale(joining)
	default:
		return false
	}
}

// CheckAdmission applies the size and gender-balance rules for one more member.
func CheckAdmission(currentGenders []string, joining string) error {
	if len(currentGenders) >= MaxTeamSize {
		return ErrTeamFull
	}
	if !CanJoinPreservingFemaleRequirement(currentGenders, joining, MaxTeamSize) {
		return ErrGenderConstraint
	}
	return nil
}

// HasFemale reports whether any gender is female.
func HasFemale(genders []string) bool {
	for _, g := range genders {
		if IsFemale(g) {
			return true
		}
	}
	return false
}
