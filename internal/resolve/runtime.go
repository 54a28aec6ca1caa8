package resolve

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vburojevic/iossim/internal/domain"
)

// RuntimeOrder decides which runtime counts as "most recent"
type RuntimeOrder string

const (
	// LexicalOrder compares labels as plain strings. "iOS 9.3" sorts after
	// "iOS 10.0" under this order; it is the historical behaviour.
	LexicalOrder RuntimeOrder = "lexical"
	// VersionOrder compares the dotted numeric components of the label.
	VersionOrder RuntimeOrder = "version"
)

// ParseRuntimeOrder maps a config value onto a RuntimeOrder
func ParseRuntimeOrder(s string) (RuntimeOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(LexicalOrder):
		return LexicalOrder, nil
	case string(VersionOrder):
		return VersionOrder, nil
	default:
		return "", fmt.Errorf("unknown runtime order %q (want %q or %q)", s, LexicalOrder, VersionOrder)
	}
}

// DefaultRuntime picks the most recent available runtime that hosts an
// instance named deviceName.
func DefaultRuntime(cat *domain.Catalog, deviceName string, order RuntimeOrder) (string, error) {
	groups := GroupRuntimes(cat, ByName, true)
	runtimes, _ := groups.Runtimes(deviceName)
	if len(runtimes) == 0 {
		return "", &NoAvailableRuntimeError{DeviceName: deviceName}
	}
	return latestRuntime(runtimes, order), nil
}

// latestRuntime sorts runtimes ascending and returns the last one
func latestRuntime(runtimes []string, order RuntimeOrder) string {
	sorted := make([]string, len(runtimes))
	copy(sorted, runtimes)

	if order == VersionOrder {
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareVersions(sorted[i], sorted[j]) < 0
		})
	} else {
		sort.Strings(sorted)
	}
	return sorted[len(sorted)-1]
}

// compareVersions orders labels such as "iOS 9.3" and "iOS 10.0" by their
// numeric components, falling back to string order for the non-numeric prefix.
func compareVersions(a, b string) int {
	pa, va := splitVersion(a)
	pb, vb := splitVersion(b)
	if pa != pb {
		return strings.Compare(pa, pb)
	}
	for i := 0; i < len(va) || i < len(vb); i++ {
		var x, y int
		if i < len(va) {
			x = va[i]
		}
		if i < len(vb) {
			y = vb[i]
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(a, b)
}

// splitVersion separates "iOS 10.3.1" into "iOS" and [10 3 1]
func splitVersion(label string) (string, []int) {
	idx := strings.IndexFunc(label, func(r rune) bool { return r >= '0' && r <= '9' })
	if idx < 0 {
		return label, nil
	}
	prefix := strings.TrimSpace(label[:idx])

	var nums []int
	for _, part := range strings.Split(label[idx:], ".") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			break
		}
		nums = append(nums, n)
	}
	return prefix, nums
}
