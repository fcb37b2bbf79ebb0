package mapping

// MapViewModels applies mapFunc to every element of entities.
func MapViewModels[T any, V any](entities []T, mapFunc func(T) V) []V {
	out := make([]V, 0, len(entities))
	for _, e := range entities {
		out = append(out, mapFunc(e))
	}
	return out
}
