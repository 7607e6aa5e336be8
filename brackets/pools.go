package brackets

// SplitIntoPools partitions a seeded team list (index 0 = top seed) into
// poolCount pools with a snake draft: the walk goes 0..N-1, reverses, and
// repeats, so adjacent seeds land in different pools and strength stays
// balanced. The concatenation of the returned pools is always a permutation
// of the input; pools may legitimately be empty when poolCount exceeds the
// team count.
func SplitIntoPools(teamIDs []string, poolCount int) [][]string {
	if poolCount <= 0 {
		return [][]string{}
	}

	pools := make([][]string, poolCount)
	for i := range pools {
		pools[i] = []string{}
	}

	pool, dir := 0, 1
	for _, id := range teamIDs {
		pools[pool] = append(pools[pool], id)
		next := pool + dir
		if next == poolCount || next < 0 {
			dir = -dir // reverse at the boundary, repeating the edge pool
		} else {
			pool = next
		}
	}
	return pools
}
