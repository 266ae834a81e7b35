package dedup

import (
	"slices"
	"strings"

	"docket/internal/inventory"
)

// Group is a set of records sharing one content digest, split into the
// single keeper and the removable duplicates.
type Group struct {
	Digest     string
	Keeper     inventory.FileRecord
	Duplicates []inventory.FileRecord
}

// Size returns the total member count including the keeper.
func (g Group) Size() int {
	return len(g.Duplicates) + 1
}

// WastedBytes is the space recoverable by removing the duplicates.
func (g Group) WastedBytes() int64 {
	var total int64
	for _, dup := range g.Duplicates {
		total += dup.SizeBytes
	}
	return total
}

// FindExactGroups groups records by content digest and returns only groups
// with two or more members, ordered by digest. Records carrying the ERROR
// sentinel are excluded. Keeper selection does not depend on input order.
func FindExactGroups(records []inventory.FileRecord) []Group {
	byDigest := make(map[string][]inventory.FileRecord)
	for _, rec := range records {
		if !rec.HasDigest() {
			continue
		}
		byDigest[rec.ContentDigest] = append(byDigest[rec.ContentDigest], rec)
	}

	groups := make([]Group, 0, len(byDigest))
	for digest, members := range byDigest {
		if len(members) < 2 {
			continue
		}
		keeper, duplicates := selectKeeper(members)
		groups = append(groups, Group{Digest: digest, Keeper: keeper, Duplicates: duplicates})
	}

	slices.SortFunc(groups, func(a, b Group) int {
		return strings.Compare(a.Digest, b.Digest)
	})
	return groups
}

// selectKeeper orders a group by (modified descending, path length
// ascending, path ascending) and keeps the first. Most recently touched wins;
// among equally recent copies the shorter, more canonical path wins; the
// final path comparison makes the order total so permuted input cannot
// change the outcome.
func selectKeeper(members []inventory.FileRecord) (inventory.FileRecord, []inventory.FileRecord) {
	sorted := slices.Clone(members)
	slices.SortFunc(sorted, func(a, b inventory.FileRecord) int {
		if c := b.ModifiedAt.Compare(a.ModifiedAt); c != 0 {
			return c
		}
		if c := len(a.Path) - len(b.Path); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	return sorted[0], sorted[1:]
}
