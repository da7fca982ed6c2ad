package model

// uniqueBy keeps the first item for each key, preserving order
func uniqueBy[T any, K comparable](items []T, key func(T) K) []T {
	if len(items) <= 1 {
		return items
	}

	seen := make(map[K]bool, len(items))
	unique := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, item)
	}
	return unique
}

func dedupeTags(tags []Tag) []Tag {
	return uniqueBy(tags, func(t Tag) int64 { return t.ID })
}

func dedupeEvents(events []Event) []Event {
	return uniqueBy(events, func(e Event) int64 { return e.ID })
}

func dedupeUsers(users []User) []User {
	return uniqueBy(users, func(u User) int64 { return u.UserID })
}
