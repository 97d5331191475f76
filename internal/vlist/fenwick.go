// Copyright 2026 Scrollcat contributors
// SPDX-License-Identifier: Apache-2.0

package vlist

// fenwick is a binary indexed tree over non-negative integer values.
// Indices are 0-based externally, 1-based internally.
type fenwick struct {
	tree []int // 1-based
	n    int
}

// newFenwickFrom builds a tree from values in O(n).
func newFenwickFrom(values []int) *fenwick {
	n := len(values)
	f := &fenwick{tree: make([]int, n+1), n: n}
	copy(f.tree[1:], values)
	for i := 1; i <= n; i++ {
		parent := i + (i & -i)
		if parent <= n {
			f.tree[parent] += f.tree[i]
		}
	}
	return f
}

// newUniformFenwick builds a tree with every value set to fill.
func newUniformFenwick(n, fill int) *fenwick {
	values := make([]int, n)
	for i := range values {
		values[i] = fill
	}
	return newFenwickFrom(values)
}

// add applies a delta to the value at index i.
func (f *fenwick) add(i, delta int) {
	if delta == 0 {
		return
	}
	for j := i + 1; j <= f.n; j += j & -j {
		f.tree[j] += delta
	}
}

// sum returns the sum of the first count values.
func (f *fenwick) sum(count int) int {
	if count > f.n {
		count = f.n
	}
	total := 0
	for j := count; j > 0; j -= j & -j {
		total += f.tree[j]
	}
	return total
}

// valueAt returns the single value at index i.
func (f *fenwick) valueAt(i int) int {
	return f.sum(i+1) - f.sum(i)
}

// searchPrefix returns the greatest count c with sum(c) <= target.
// With strictly positive values this is the index of the element whose
// span covers target.
func (f *fenwick) searchPrefix(target int) int {
	if target < 0 {
		return 0
	}
	pos := 0
	rem := target
	// highest power of two <= n
	k := 1
	for k<<1 <= f.n {
		k <<= 1
	}
	for ; k > 0; k >>= 1 {
		next := pos + k
		if next <= f.n && f.tree[next] <= rem {
			pos = next
			rem -= f.tree[next]
		}
	}
	return pos
}
