package taxonomy

import "sort"

// Filter reduces a class set to the taxonomy members every artifact may
// reference. All three exclusion mechanisms apply to the same pass, so a
// class dropped as unavailable gets no marker declaration, no dispatch
// arm, and no companion-classifier branch anywhere.
//
// The result is sorted so downstream artifacts diff stably between runs.
func Filter(classes map[string]bool, rules *Rules) []string {
	members := make([]string, 0, len(classes))
	for name := range classes {
		if _, dropped := rules.ExclusionReason(name); dropped {
			continue
		}
		members = append(members, name)
	}
	sort.Strings(members)
	return members
}
