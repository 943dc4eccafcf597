package reveal

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Map is the Conv of a map whose keys have the Conv Key and whose values have
// the Conv Value. Entries are visited in ascending key order: Compare orders
// the keys of the possibly shared map and CompareBase orders the keys of the
// public map. For every entry the key is converted before the value.
//
// Converting two distinct keys to the same key would change the key set of
// the map, so it panics with a *ShapeError.
type Map[KS, KB comparable, VS, VB any] struct {
	Key         Conv[KS, KB]
	Value       Conv[VS, VB]
	Compare     func(a, b KS) int
	CompareBase func(a, b KB) int
}

// MapOf returns the Conv of maps with keys and values of the given Convs,
// visited in the order given by the comparison functions.
func MapOf[KS, KB comparable, VS, VB any](
	key Conv[KS, KB], value Conv[VS, VB],
	compare func(a, b KS) int, compareBase func(a, b KB) int,
) Map[KS, KB, VS, VB] {
	return Map[KS, KB, VS, VB]{Key: key, Value: value, Compare: compare, CompareBase: compareBase}
}

// OrderedMapOf returns the Conv of maps keyed by a public ordered type, such
// as indices or names, with values of the given Conv.
func OrderedMapOf[K constraints.Ordered, VS, VB any](value Conv[VS, VB]) Map[K, K, VS, VB] {
	return MapOf[K, K, VS, VB](Identity[K]{}, value, compareOrdered[K], compareOrdered[K])
}

// Reveal implements the Conv interface.
func (c Map[KS, KB, VS, VB]) Reveal(m map[KS]VS) map[KB]VB {
	return mapEntries(m, c.Compare, c.Key.Reveal, c.Value.Reveal)
}

// FromAddShared implements the Conv interface.
func (c Map[KS, KB, VS, VB]) FromAddShared(m map[KB]VB) map[KS]VS {
	return mapEntries(m, c.CompareBase, c.Key.FromAddShared, c.Value.FromAddShared)
}

// FromPublic implements the Conv interface.
func (c Map[KS, KB, VS, VB]) FromPublic(m map[KB]VB) map[KS]VS {
	return mapEntries(m, c.CompareBase, c.Key.FromPublic, c.Value.FromPublic)
}

// UnwrapAsPublic implements the Conv interface.
func (c Map[KS, KB, VS, VB]) UnwrapAsPublic(m map[KS]VS) map[KB]VB {
	return mapEntries(m, c.Compare, c.Key.UnwrapAsPublic, c.Value.UnwrapAsPublic)
}

func mapEntries[K, KR comparable, V, VR any](
	m map[K]V, compare func(a, b K) int, fk func(K) KR, fv func(V) VR,
) map[KR]VR {
	if m == nil {
		return nil
	}
	keys := lo.Keys(m)
	slices.SortFunc(keys, compare)

	res := make(map[KR]VR, len(m))
	for _, k := range keys {
		kr := fk(k)
		if _, ok := res[kr]; ok {
			panic(&ShapeError{
				Type:   TypeName[map[K]V](),
				Reason: fmt.Sprintf("key %v converts to a key that is already present", k),
			})
		}
		res[kr] = fv(m[k])
	}
	return res
}

func compareOrdered[K constraints.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
