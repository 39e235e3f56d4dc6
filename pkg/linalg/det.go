package linalg

// leibniz evaluates the determinant of the n×n grid at(col, row) as the
// signed sum, over every permutation p, of the products at(p[r], r).
// Permutations are visited with Heap's algorithm; each step is a single
// swap and so flips the sign.
func leibniz(n int, at func(col, row int) Scalar) Scalar {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := Scalar(1)
	sum := term(perm, at)

	c := make([]int, n)
	for i := 1; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[c[i]], perm[i] = perm[i], perm[c[i]]
			}
			sign = -sign
			sum += sign * term(perm, at)
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return sum
}

func term(perm []int, at func(col, row int) Scalar) Scalar {
	p := Scalar(1)
	for row, col := range perm {
		p *= at(col, row)
	}
	return p
}
