// Package lcs provides functions for finding the longest common prefix of
// strings and splitting names into words.
package lcs

import (
	"slices"
)

// CommonPrefix returns the longest common prefix of the strings in ss.
func CommonPrefix(ss []string) string {
	// This implementation is based on os.path.commonprefix in Python.
	// https://github.com/python/cpython/blob/ed24702bd0f9925908ce48584c31dfad732208b2/Lib/genericpath.py#L105
	if len(ss) == 0 {
		return ""
	}

	// Find the lexicographically smallest and largest strings in ss.
	ss = slices.Clone(ss)
	slices.Sort(ss)

	min := slices.Min(ss)
	max := slices.Max(ss)

	// The longest common prefix of min and max is the longest common prefix of
	// ss because ss is lexicographically sorted.
	for i := range []byte(min) {
		if min[i] != max[i] {
			return min[:i]
		}
	}

	// min itself is the longest common prefix.
	return min
}

// Closest returns the candidate sharing the longest common prefix with s. Ties
// are broken by the order of candidates. It returns false if no candidate
// shares even the first byte.
func Closest(s string, candidates []string) (string, bool) {
	best, bestLen := "", 0
	for _, c := range candidates {
		if n := len(CommonPrefix([]string{s, c})); n > bestLen {
			best, bestLen = c, n
		}
	}
	return best, bestLen != 0
}
