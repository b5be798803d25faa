// Package version checks for newer releases of the client.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type semver [3]int

func parse(s string) (semver, error) {
	var v semver
	core, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	if _, err := fmt.Sscanf(core, "%d.%d.%d", &v[0], &v[1], &v[2]); err != nil {
		return semver{}, fmt.Errorf("parse version %q: %w", s, err)
	}
	return v, nil
}

// Compare returns 1 when a is newer than b, -1 when older, 0 when equal.
// A leading "v" and pre-release suffixes are ignored.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	return slices.Compare(av[:], bv[:]), nil
}
