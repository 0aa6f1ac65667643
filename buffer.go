package marbling

import "iter"

// dropBuffer is a fixed-capacity FIFO of drops in insertion order.
// Pushing into a full buffer overwrites, and returns, the oldest drop.
type dropBuffer struct {
	data []*Drop
	pos  int
	full bool
}

func newDropBuffer(capacity int) *dropBuffer {
	return &dropBuffer{data: make([]*Drop, capacity)}
}

// push appends d and returns the evicted drop, or nil.
func (b *dropBuffer) push(d *Drop) (evicted *Drop) {
	if b.full {
		evicted = b.data[b.pos]
	}
	b.data[b.pos] = d
	b.pos++
	if b.pos >= len(b.data) {
		b.pos = 0
		b.full = true
	}
	return evicted
}

func (b *dropBuffer) size() int {
	if b.full {
		return len(b.data)
	}
	return b.pos
}

func (b *dropBuffer) capacity() int {
	return len(b.data)
}

// at returns the i-th drop counting from the oldest.
func (b *dropBuffer) at(i int) *Drop {
	if b.full {
		return b.data[(b.pos+i)%len(b.data)]
	}
	return b.data[i]
}

// all yields drops oldest first.
func (b *dropBuffer) all() iter.Seq2[int, *Drop] {
	return func(yield func(int, *Drop) bool) {
		n := b.size()
		for i := range n {
			if !yield(i, b.at(i)) {
				return
			}
		}
	}
}
