package scheduling

// exactlyN emits CNF clauses constraining exactly n of the given literals to
// be true, using the sequential-counter cardinality gadget in
// both directions: at-most-n over lits, and at-most-(len(lits)-n) over their
// negations (which is equivalent to at-least-n over lits). This keeps the
// encoding linear in len(lits) rather than the quadratic blowup of pairwise
// enumeration. Fresh auxiliary variables are drawn from *next, which is
// advanced past every id the gadget allocates; auxiliaries from one call are
// never reused by another.
func exactlyN(lits []int, n int, next *int) [][]int {
	clauses := atMostKSeqCounter(lits, n, next)
	negated := make([]int, len(lits))
	for i, l := range lits {
		negated[i] = -l
	}
	clauses = append(clauses, atMostKSeqCounter(negated, len(lits)-n, next)...)
	return clauses
}

// atMostKSeqCounter emits clauses constraining at most k of lits to be true,
// via Sinz's sequential-counter encoding (linear in len(lits)).
func atMostKSeqCounter(lits []int, k int, next *int) [][]int {
	n := len(lits)

	if k < 0 {
		k = 0
	}
	if k >= n {
		return nil
	}
	if k == 0 {
		clauses := make([][]int, 0, n)
		for _, l := range lits {
			clauses = append(clauses, []int{-l})
		}
		return clauses
	}

	// s[i][j], i = 0..n-2, j = 0..k-1: "at least j+1 of lits[0..i] are true".
	s := make([][]int, n-1)
	for i := range s {
		s[i] = make([]int, k)
		for j := range s[i] {
			s[i][j] = *next
			*next++
		}
	}

	var clauses [][]int

	clauses = append(clauses, []int{-lits[0], s[0][0]})
	for j := 1; j < k; j++ {
		clauses = append(clauses, []int{-s[0][j]})
	}

	for i := 1; i < n-1; i++ {
		clauses = append(clauses, []int{-lits[i], s[i][0]})
		clauses = append(clauses, []int{-s[i-1][0], s[i][0]})
		for j := 1; j < k; j++ {
			clauses = append(clauses, []int{-lits[i], -s[i-1][j-1], s[i][j]})
		}
		for j := 0; j < k; j++ {
			clauses = append(clauses, []int{-s[i-1][j], s[i][j]})
		}
		clauses = append(clauses, []int{-lits[i], -s[i-1][k-1]})
	}

	clauses = append(clauses, []int{-lits[n-1], -s[n-2][k-1]})

	return clauses
}
