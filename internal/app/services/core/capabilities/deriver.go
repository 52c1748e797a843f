package capabilities

import (
	"provider-directory/internal/app/contracts"
	"sort"
)

type deriver struct {
	subjects []Subject
}

func NewCapabilityDeriver() contracts.CapabilityDeriver {
	return &deriver{subjects: Subjects}
}

func (d *deriver) Derive(roles []string) []string {
	return derive(d.subjects, roles)
}

// Derive returns the sorted names of every subject the role set may see.
// A sub-subject is considered only when its parent is included.
func Derive(roles []string) []string {
	return derive(Subjects, roles)
}

func derive(subjects []Subject, roles []string) []string {
	held := make(map[string]bool, len(roles))
	for _, role := range roles {
		held[role] = true
	}

	included := make(map[string]bool)
	var walk func(subjects []Subject)
	walk = func(subjects []Subject) {
		for _, subject := range subjects {
			if !allows(subject, held) {
				continue
			}
			included[subject.Name] = true
			walk(subject.SubSubjects)
		}
	}
	walk(subjects)

	names := make([]string, 0, len(included))
	for name := range included {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func allows(subject Subject, held map[string]bool) bool {
	for _, role := range subject.AllowedRoles {
		if held[role] {
			return true
		}
	}
	return false
}
