package sorting

// The algorithms below work on any element type and take a three-way
// comparator; reverse flips the direction without touching the comparator.

func outOfOrder[T any](cmp func(a, b T) int, reverse bool) func(a, b T) bool {
	return func(a, b T) bool {
		c := cmp(a, b)
		if reverse {
			return c < 0
		}
		return c > 0
	}
}

// bubbleSort makes full adjacent-swap passes. Stable.
func bubbleSort[T any](items []T, cmp func(a, b T) int, reverse bool) []T {
	after := outOfOrder(cmp, reverse)
	n := len(items)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if after(items[j], items[j+1]) {
				items[j], items[j+1] = items[j+1], items[j]
			}
		}
	}
	return items
}

// insertionSort shifts larger elements right and drops the current one into
// the gap. Stable and cheap on nearly sorted input.
func insertionSort[T any](items []T, cmp func(a, b T) int, reverse bool) []T {
	after := outOfOrder(cmp, reverse)
	for i := 1; i < len(items); i++ {
		current := items[i]
		j := i - 1
		for j >= 0 && after(items[j], current) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = current
	}
	return items
}

// quickSort partitions around the middle element into less, equal and
// greater groups and concatenates the recursively sorted groups. Elements
// equal to the pivot always go to the middle group; for the rest the side is
// chosen by (x < pivot) XOR reverse.
func quickSort[T any](items []T, cmp func(a, b T) int, reverse bool) []T {
	if len(items) <= 1 {
		return items
	}

	pivot := items[len(items)/2]
	var left, middle, right []T
	for _, x := range items {
		c := cmp(x, pivot)
		switch {
		case c == 0:
			middle = append(middle, x)
		case (c < 0) != reverse:
			left = append(left, x)
		default:
			right = append(right, x)
		}
	}

	out := make([]T, 0, len(items))
	out = append(out, quickSort(left, cmp, reverse)...)
	out = append(out, middle...)
	out = append(out, quickSort(right, cmp, reverse)...)
	return out
}

// mergeSort halves recursively and merges, taking from the left run on ties.
func mergeSort[T any](items []T, cmp func(a, b T) int, reverse bool) []T {
	if len(items) <= 1 {
		return items
	}

	mid := len(items) / 2
	left := mergeSort(items[:mid], cmp, reverse)
	right := mergeSort(items[mid:], cmp, reverse)
	return merge(left, right, cmp, reverse)
}

func merge[T any](left, right []T, cmp func(a, b T) int, reverse bool) []T {
	out := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		c := cmp(left[i], right[j])
		if (!reverse && c <= 0) || (reverse && c >= 0) {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}
