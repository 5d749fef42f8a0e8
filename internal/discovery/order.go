// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"path/filepath"
	"sort"
	"strings"
)

// CompareContainers orders two container filenames for the primary store:
//
//   - stems without a dash sort before stems with one, so "classes.dex"
//     precedes every "secondary-N.dex"
//   - two non-dashed stems compare bytewise
//   - two dashed stems compare by the integer parsed after the last dash
//     ("secondary-2" before "secondary-10"), falling back to a bytewise
//     stem comparison when the numbers tie
//
// Only base names matter; any directory prefix is stripped first. The
// result is negative, zero, or positive in the usual cmp convention, and
// the relation is a total order so sorting any permutation of the same
// names yields the same sequence.
func CompareContainers(a, b string) int {
	sa, sb := stem(a), stem(b)

	da, db := strings.Contains(sa, "-"), strings.Contains(sb, "-")
	switch {
	case !da && !db:
		return strings.Compare(sa, sb)
	case !da:
		return -1
	case !db:
		return 1
	}

	na, nb := orderingNumber(sa), orderingNumber(sb)
	if na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	return strings.Compare(sa, sb)
}

// SortContainers sorts container paths in place into primary-store load
// order. Sorting is stable by construction since CompareContainers is total.
func SortContainers(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return CompareContainers(paths[i], paths[j]) < 0
	})
}

// stem returns the base filename without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// orderingNumber parses the ordering number from a dashed stem: the run
// of leading digits in the substring after the last dash. A suffix with
// no leading digits yields 0, so "secondary-foo" sorts as if numbered 0.
func orderingNumber(stem string) int {
	suffix := stem[strings.LastIndex(stem, "-")+1:]

	n := 0
	for _, r := range suffix {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
