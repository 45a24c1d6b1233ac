package labels

import (
	"sort"

	"atlasgo/pkg/geom"
)

// RegionLocator finds the administrative region containing a point.
type RegionLocator interface {
	Locate(p geom.Point) (code string, ok bool)
}

// DroppedCapital records a capital removed because its region already has one.
type DroppedCapital struct {
	Entry  Entry
	Region string
	KeptBy string // display name of the surviving capital
}

// Resolution is the outcome of capital conflict resolution.
type Resolution struct {
	Entries  []Entry // survivors, in input order
	Dropped  []DroppedCapital
	Unmapped int // capitals outside every region
}

// ResolveCapitals keeps at most one capital per region. Within a region the
// capital with the rarest display name (counted over all entries) wins;
// equal counts go to the earliest entry. Capitals outside every region and
// all non-capital entries pass through untouched.
func ResolveCapitals(entries []Entry, locator RegionLocator) Resolution {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.DisplayName()]++
	}

	var res Resolution
	var regionOrder []string
	groups := make(map[string][]int)

	for i, e := range entries {
		if !e.Anchor.Capital {
			continue
		}
		code, ok := locate(locator, e.Anchor.Point())
		if !ok {
			res.Unmapped++
			continue
		}
		if _, seen := groups[code]; !seen {
			regionOrder = append(regionOrder, code)
		}
		groups[code] = append(groups[code], i)
	}

	dropped := make(map[int]bool)
	for _, code := range regionOrder {
		members := groups[code]
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(a, b int) bool {
			return counts[entries[members[a]].DisplayName()] < counts[entries[members[b]].DisplayName()]
		})
		keeper := entries[members[0]].DisplayName()
		for _, idx := range members[1:] {
			dropped[idx] = true
			res.Dropped = append(res.Dropped, DroppedCapital{
				Entry:  entries[idx],
				Region: code,
				KeptBy: keeper,
			})
		}
	}

	res.Entries = make([]Entry, 0, len(entries)-len(dropped))
	for i, e := range entries {
		if !dropped[i] {
			res.Entries = append(res.Entries, e)
		}
	}
	return res
}

func locate(locator RegionLocator, p geom.Point) (string, bool) {
	if locator == nil {
		return "", false
	}
	return locator.Locate(p)
}
