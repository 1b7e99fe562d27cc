package sanitizer

// Compose builds a reusable pipeline that runs transforms in order.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		for _, transform := range transforms {
			value = transform(value)
		}
		return value
	}
}
