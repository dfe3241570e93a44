package images

import "strconv"

// Sequence returns the positional labels code-1 through code-n.
func Sequence(code string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = code + "-" + strconv.Itoa(i+1)
	}
	return labels
}
