package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Shuffle performs a Fisher-Yates shuffle of n elements using swap
// Every permutation is equally likely as long as g is uniform.
func Shuffle(g Generator, n int, swap func(i, j int)) {
	for j := n - 1; j > 0; j-- {
		swap(g.Intn(j+1), j)
	}
}
