// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/vecscene/core/math32"

// ID is a stable identifier for an [Item] registered in a [Context]
// arena. The low 32 bits hold the slot index plus one, the high 32
// bits the slot generation, so a stale ID from a destroyed item
// resolves to nil rather than to whatever item reuses the slot.
// The zero ID is invalid.
type ID uint64

// IsValid returns whether this is a possibly live ID (non-zero).
func (id ID) IsValid() bool {
	return id != 0
}

func (id ID) slot() (idx, gen uint32) {
	return uint32(id) - 1, uint32(id >> 32)
}

func makeID(idx, gen uint32) ID {
	return ID(uint64(idx+1) | uint64(gen)<<32)
}

type itemSlot struct {
	item Item
	gen  uint32
}

// Context owns the item arena and the kernel settings for one scene.
// All item constructors take a Context; there is no implicit global
// scope. A Context and the items registered in it form one
// single-threaded mutable structure: no method on it or on its items
// is safe for concurrent use.
type Context struct {

	// Precision is the number of decimal places used when formatting
	// numbers in path-data output.
	Precision int

	// Tolerance is the absolute distance within which two points are
	// considered coincident, used when merging segments in
	// [Path.ClosePath].
	Tolerance float32

	slots []itemSlot
	free  []uint32
}

// DefaultPrecision is the path-data output precision used by
// [NewContext].
const DefaultPrecision = 5

// NewContext returns a new [Context] with default settings.
func NewContext() *Context {
	return &Context{Precision: DefaultPrecision, Tolerance: math32.GeomEpsilon}
}

// register adds the item to the arena and returns its ID.
func (c *Context) register(it Item) ID {
	var idx uint32
	if n := len(c.free); n > 0 {
		idx = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.slots = append(c.slots, itemSlot{})
		idx = uint32(len(c.slots) - 1)
	}
	c.slots[idx].item = it
	return makeID(idx, c.slots[idx].gen)
}

// release frees the item's arena slot, bumping the generation so that
// outstanding IDs for it resolve to nil.
func (c *Context) release(id ID) {
	idx, gen := id.slot()
	if int(idx) >= len(c.slots) || c.slots[idx].gen != gen {
		return
	}
	c.slots[idx].item = nil
	c.slots[idx].gen++
	c.free = append(c.free, idx)
}

// Item resolves an ID to its item, returning nil if the ID is invalid
// or the item has since been destroyed.
func (c *Context) Item(id ID) Item {
	if !id.IsValid() {
		return nil
	}
	idx, gen := id.slot()
	if int(idx) >= len(c.slots) || c.slots[idx].gen != gen {
		return nil
	}
	return c.slots[idx].item
}

// NumLive returns the number of live items registered in the arena.
func (c *Context) NumLive() int {
	n := 0
	for _, s := range c.slots {
		if s.item != nil {
			n++
		}
	}
	return n
}
