// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func TestSortContainers_CanonicalLayout(t *testing.T) {
	paths := []string{
		"secondary-2.dex",
		"classes.dex",
		"secondary-10.dex",
		"secondary-1.dex",
	}
	SortContainers(paths)

	want := []string{
		"classes.dex",
		"secondary-1.dex",
		"secondary-2.dex",
		"secondary-10.dex",
	}
	if !slices.Equal(paths, want) {
		t.Errorf("SortContainers() = %v, want %v", paths, want)
	}
}

func TestCompareContainers(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int // sign only
	}{
		{"non-dashed before dashed", "classes.dex", "secondary-1.dex", -1},
		{"dashed after non-dashed", "secondary-1.dex", "classes.dex", 1},
		{"numeric not lexicographic", "secondary-2.dex", "secondary-10.dex", -1},
		{"non-dashed pair bytewise", "aux.dex", "classes.dex", -1},
		{"equal names", "classes.dex", "classes.dex", 0},
		{"directory prefix ignored", "/a/b/classes.dex", "classes.dex", 0},
		{"non-numeric suffix counts as zero", "secondary-foo.dex", "secondary-1.dex", -1},
		{"leading digits only", "secondary-2x.dex", "secondary-10.dex", -1},
		{"equal numbers tie-break on stem", "alpha-3.dex", "beta-3.dex", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareContainers(tt.a, tt.b)
			if sign(got) != tt.want {
				t.Errorf("CompareContainers(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Sorting any permutation of the same filenames must produce the same
// sequence, with all non-dashed stems ahead of all dashed ones.
func TestSortContainers_PermutationInvariant(t *testing.T) {
	nameGen := rapid.OneOf(
		rapid.Just("classes.dex"),
		rapid.StringMatching(`[a-z]{1,8}\.dex`),
		rapid.StringMatching(`secondary-[0-9]{1,3}\.dex`),
		rapid.StringMatching(`[a-z]{1,5}-[a-z0-9]{1,5}\.dex`),
	)

	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfN(nameGen, 0, 20).Draw(t, "names")

		sorted := slices.Clone(names)
		SortContainers(sorted)

		perm := rapid.Permutation(slices.Clone(names)).Draw(t, "perm")
		SortContainers(perm)

		if !slices.Equal(sorted, perm) {
			t.Fatalf("order depends on input permutation:\n%v\nvs\n%v", sorted, perm)
		}

		seenDashed := false
		for _, name := range sorted {
			dashed := containsDash(stem(name))
			if seenDashed && !dashed {
				t.Fatalf("non-dashed %q after a dashed stem in %v", name, sorted)
			}
			seenDashed = seenDashed || dashed
		}
	})
}

func containsDash(s string) bool {
	for _, r := range s {
		if r == '-' {
			return true
		}
	}
	return false
}

func TestOrderingNumber(t *testing.T) {
	tests := []struct {
		stem string
		want int
	}{
		{"secondary-1", 1},
		{"secondary-10", 10},
		{"secondary-007", 7},
		{"secondary-2abc", 2},
		{"secondary-foo", 0},
		{"secondary-", 0},
		{"a-b-42", 42},
	}

	for _, tt := range tests {
		if got := orderingNumber(tt.stem); got != tt.want {
			t.Errorf("orderingNumber(%q) = %d, want %d", tt.stem, got, tt.want)
		}
	}
}
