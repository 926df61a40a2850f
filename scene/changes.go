// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "strings"

// Changes is a bitflag set describing what aspect of an [Item]
// changed, passed to [ItemBase.Changed] by mutation methods and
// external collaborators.
type Changes int64

const (
	// Geometry indicates a change to the geometry of the item itself:
	// its matrix, or for a path its segments.
	Geometry Changes = 1 << iota

	// Children indicates a change to the set or order of an item's
	// children.
	Children

	// Stroke indicates a change to stroke parameters that affect
	// stroke bounds.
	Stroke

	// Attribute indicates a change to non-geometric attributes such as
	// the name or visibility.
	Attribute
)

var changeNames = []string{"Geometry", "Children", "Stroke", "Attribute"}

func (c Changes) String() string {
	if c == 0 {
		return "None"
	}
	var b strings.Builder
	for i, nm := range changeNames {
		if c&(1<<i) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(nm)
	}
	return b.String()
}

// HasFlag returns whether the set contains any of the given flags.
func (c Changes) HasFlag(flags Changes) bool {
	return c&flags != 0
}
