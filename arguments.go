package tokenengine

import "strings"

// Arguments is a list of string values such as scopes, audiences or
// presenters.
type Arguments []string

// Has checks, in a case-sensitive manner, that all of the items provided
// exist in arguments.
func (r Arguments) Has(items ...string) bool {
	for _, item := range items {
		if !StringInSlice(item, r) {
			return false
		}
	}

	return true
}

// HasOneOf checks, in a case-sensitive manner, that one of the items
// provided exists in arguments.
func (r Arguments) HasOneOf(items ...string) bool {
	for _, item := range items {
		if StringInSlice(item, r) {
			return true
		}
	}

	return false
}

// ExactOne checks, by string case, that a single argument equals the
// provided string.
func (r Arguments) ExactOne(name string) bool {
	return len(r) == 1 && r[0] == name
}

// Matches performs a case-sensitive, out-of-order check that the items
// provided exist and equal all of the args in arguments.
func (r Arguments) Matches(items ...string) bool {
	if len(r) != len(items) {
		return false
	}

	found := make(map[string]bool)
	for _, item := range items {
		if !StringInSlice(item, r) {
			return false
		}
		found[item] = true
	}

	return len(found) == len(r)
}

// String joins the arguments with a single space, the wire form used for
// multi-valued grant properties.
func (r Arguments) String() string {
	return strings.Join(r, " ")
}

// StringInSlice returns true if needle exists in haystack.
func StringInSlice(needle string, haystack []string) bool {
	for _, b := range haystack {
		if b == needle {
			return true
		}
	}

	return false
}
