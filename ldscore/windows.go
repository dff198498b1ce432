package ldscore

// BlockLefts returns, for each SNP, the index of the leftmost SNP whose
// coordinate lies within maxDist of it. Coordinates must be sorted in
// nondecreasing order.
func BlockLefts(coords []float64, maxDist float64) []int {
	m := len(coords)
	lefts := make([]int, m)
	j := 0
	for i := 0; i < m; i++ {
		for j < m && coords[j] < coords[i]-maxDist {
			j++
		}
		lefts[i] = j
	}
	return lefts
}

// BlockLeftToRight converts left window boundaries into exclusive right
// boundaries: rights[i] is the first index whose window starts past i.
func BlockLeftToRight(blockLeft []int) []int {
	m := len(blockLeft)
	rights := make([]int, m)
	j := 0
	for i := 0; i < m; i++ {
		for j < m && blockLeft[j] <= i {
			j++
		}
		rights[i] = j
	}
	return rights
}
