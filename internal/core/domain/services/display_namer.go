package services

import (
	"fmt"
	"sort"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
)

// DisplayNamer computes display names for bundles, disambiguating split
// siblings. Within a sibling group of more than one member, each member's
// name is suffixed with its ordinal position when sorted by creation time
// ascending ("Bundle #7 - 1", "Bundle #7 - 2", ...). Singleton groups and
// bundles without a base number keep the bare name.
//
// Names are a pure projection recomputed on every read and are never
// persisted.
type DisplayNamer struct{}

// NewDisplayNamer creates a DisplayNamer.
func NewDisplayNamer() DisplayNamer {
	return DisplayNamer{}
}

// Names returns the display name for every bundle in the slice, keyed by
// bundle id. The slice should contain all bundles of one cut order so that
// sibling groups are complete.
func (n DisplayNamer) Names(bundles []*bundle.Bundle) map[kernel.UUID]string {
	groups := make(map[int][]*bundle.Bundle)
	names := make(map[kernel.UUID]string, len(bundles))

	for _, b := range bundles {
		base, ok := b.Number().Base()
		if !ok {
			names[b.ID()] = fmt.Sprintf("Bundle %s", b.ID())
			continue
		}
		groups[base] = append(groups[base], b)
	}

	for base, group := range groups {
		bareName := fmt.Sprintf("Bundle #%d", base)
		if len(group) == 1 {
			names[group[0].ID()] = bareName
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt().Before(group[j].CreatedAt())
		})
		for i, b := range group {
			names[b.ID()] = fmt.Sprintf("%s - %d", bareName, i+1)
		}
	}

	return names
}
