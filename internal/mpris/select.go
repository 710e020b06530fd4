package mpris

import (
	"slices"
	"strings"
)

// MatchName reports whether a requested player name addresses the running
// instance. "vlc" matches both "vlc" and "vlc.instance42"; an explicit
// "vlc.instance42" matches only that instance.
func MatchName(name, instance string) bool {
	if name == instance {
		return true
	}
	return strings.HasPrefix(instance, name) &&
		strings.HasPrefix(instance[len(name):], ".instance")
}

// SelectNames picks the running instances addressed by the requested names,
// in request order and without duplicates. Instances matching an ignored
// name are dropped. An empty request selects every running player.
func SelectNames(requested, running, ignored []string) []string {
	if len(requested) == 0 {
		requested = running
	}

	var selected []string
	for _, want := range requested {
		for _, instance := range running {
			if !MatchName(want, instance) {
				continue
			}
			if slices.ContainsFunc(ignored, func(name string) bool {
				return MatchName(name, instance)
			}) {
				continue
			}
			if slices.Contains(selected, instance) {
				continue
			}
			selected = append(selected, instance)
		}
	}
	return selected
}
