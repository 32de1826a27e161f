package input

import "math/bits"

// Bitset is a growable set of non-negative integers.
type Bitset []uint64

// Set marks bit as present. Negative bits are ignored.
func (b *Bitset) Set(bit int) {
	if bit < 0 {
		return
	}
	word, pos := bit/64, uint(bit%64)
	for len(*b) <= word {
		*b = append(*b, 0)
	}
	(*b)[word] |= 1 << pos
}

// Clear marks bit as absent.
func (b *Bitset) Clear(bit int) {
	if bit < 0 {
		return
	}
	word, pos := bit/64, uint(bit%64)
	if len(*b) <= word {
		return
	}
	(*b)[word] &^= 1 << pos
}

// Put sets or clears bit.
func (b *Bitset) Put(bit int, on bool) {
	if on {
		b.Set(bit)
	} else {
		b.Clear(bit)
	}
}

// Test reports whether bit is present.
func (b Bitset) Test(bit int) bool {
	if bit < 0 {
		return false
	}
	word, pos := bit/64, uint(bit%64)
	if len(b) <= word {
		return false
	}
	return b[word]&(1<<pos) != 0
}

// Count returns the number of bits set.
func (b Bitset) Count() int {
	n := 0
	for _, word := range b {
		n += bits.OnesCount64(word)
	}
	return n
}

// ForEach calls fn for every set bit in ascending order.
func (b Bitset) ForEach(fn func(bit int)) {
	for wordIdx, word := range b {
		for word != 0 {
			pos := bits.TrailingZeros64(word)
			fn(wordIdx*64 + pos)
			word &^= 1 << uint(pos)
		}
	}
}
