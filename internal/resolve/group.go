package resolve

import "github.com/vburojevic/iossim/internal/domain"

// DeviceAttribute picks the grouping key from a device instance
type DeviceAttribute func(d domain.DeviceInstance) string

// ByName groups by device name ("iPhone 6")
func ByName(d domain.DeviceInstance) string { return d.Name }

// ByUDID groups by instance identifier
func ByUDID(d domain.DeviceInstance) string { return d.UDID }

// RuntimeGroups maps a device attribute value to the runtimes that host an
// instance with that value. Keys keep first-seen catalog order.
//
//	"iPhone 6"      -> ["iOS 8.2", "iOS 8.3"]
//	"iPhone 6 Plus" -> ["iOS 8.2", "iOS 8.3"]
type RuntimeGroups struct {
	keys     []string
	runtimes map[string][]string
}

// Keys returns the attribute values in the order they were first seen
func (g *RuntimeGroups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Runtimes returns the runtime labels recorded for key. The bool is false when
// no device carried key at all.
func (g *RuntimeGroups) Runtimes(key string) ([]string, bool) {
	rts, ok := g.runtimes[key]
	if !ok {
		return nil, false
	}
	out := make([]string, len(rts))
	copy(out, rts)
	return out, true
}

// Len returns the number of distinct keys
func (g *RuntimeGroups) Len() int {
	return len(g.keys)
}

// GroupRuntimes walks every device group in catalog order and records the
// group's runtime under attr(device). Duplicates are kept. With availableOnly,
// runtimes that are unknown or not available are skipped; the key is still
// recorded so callers can tell "no instance" from "no usable runtime".
func GroupRuntimes(cat *domain.Catalog, attr DeviceAttribute, availableOnly bool) *RuntimeGroups {
	groups := &RuntimeGroups{runtimes: make(map[string][]string)}
	if cat == nil {
		return groups
	}

	available := make(map[string]bool, len(cat.Runtimes))
	for _, rt := range cat.Runtimes {
		if rt.Available {
			available[rt.Name] = true
		}
	}

	for _, group := range cat.Devices {
		for _, device := range group.Devices {
			key := attr(device)
			if _, seen := groups.runtimes[key]; !seen {
				groups.keys = append(groups.keys, key)
				groups.runtimes[key] = []string{}
			}
			if availableOnly && !available[group.Runtime] {
				continue
			}
			groups.runtimes[key] = append(groups.runtimes[key], group.Runtime)
		}
	}

	return groups
}
