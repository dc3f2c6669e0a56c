package domain

import (
	"github.com/google/uuid"
)

// Resolve orders found by the requested ids, dropping duplicates.
// When an id has no match, it is returned as missing and found is discarded.
// The first unmatched id in request order is the one reported.
func Resolve[T any](ids []uuid.UUID, found []T, idOf func(*T) uuid.UUID) ([]T, *uuid.UUID) {
	byID := make(map[uuid.UUID]*T, len(found))
	for i := range found {
		byID[idOf(&found[i])] = &found[i]
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]T, 0, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}

		e, ok := byID[id]
		if !ok {
			missing := id
			return nil, &missing
		}

		out = append(out, *e)
	}

	return out, nil
}
