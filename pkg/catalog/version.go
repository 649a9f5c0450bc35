package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// BaselineVersion is the reserved directory name of the bootstrap migration.
// The baseline creates the schema from scratch and always sorts before every
// versioned migration.
const BaselineVersion = "Initial"

// Version is a parsed dotted-numeric migration version used for ordering all
// non-baseline migrations.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a strict major.minor.patch version string. Any string
// that does not parse (wrong component count, non-numeric or negative parts,
// and the baseline sentinel itself) yields the zero version 0.0.0, which sorts
// before every real version and is considered due relative to any target.
// This fallback is deliberate and load-bearing: the baseline and malformed
// directory names order first rather than failing discovery.
func ParseVersion(s string) Version {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Version{}
		}
		nums[i] = int(n)
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}
}

// Compare returns -1, 0, or 1 when v is ordered before, equal to, or after o.
func (v Version) Compare(o Version) int {
	for _, d := range [3]int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}

	return 0
}

// String renders the version in major.minor.patch form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
