// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene implements a 2D vector graphics scene graph: a tree of
// items carrying affine transforms, with cached bounds queries, a
// segment and curve based path model, and an SVG path-data codec.
package scene

import (
	"log/slog"
	"reflect"
	"slices"

	"github.com/jinzhu/copier"

	"github.com/vecscene/core/math32"
)

// Item is the interface for all nodes in the scene graph tree.
type Item interface {

	// AsItemBase returns the [ItemBase] for this item, which gives
	// access to all the base-level data structures and methods
	// without requiring interface methods.
	AsItemBase() *ItemBase

	// LocalBounds returns the bounding box of this item's own content,
	// transformed by the given matrix (nil means untransformed).
	// The query carries the bounds options and the item whose result
	// is being cached, for dependency registration.
	LocalBounds(m *math32.Matrix2, q boundsQuery) math32.Box2

	// TransformContent applies the given matrix directly to the
	// geometry of this item's content (segment coordinates for paths,
	// children for containers when recursively is set). It returns
	// whether the content could be transformed; items that store all
	// state in their matrix return false.
	TransformContent(m math32.Matrix2, recursively, setApply bool) bool

	// Equals returns whether this item has the same content as the
	// other: same concrete type, same geometry, and for containers
	// pairwise equal children.
	Equals(other Item) bool

	// IsEmpty returns whether this item has no content: no segments
	// for a path, no children for a container.
	IsEmpty() bool

	// CopyFieldsFrom copies the content fields of the given item of
	// the same concrete type into this one.
	CopyFieldsFrom(from Item)
}

// BoundsOptions selects the bounds variant returned by
// [ItemBase.Bounds]. The zero value requests plain geometric bounds.
type BoundsOptions struct {

	// Stroke includes the stroke extent (half the stroke width on
	// every side).
	Stroke bool

	// Handle includes curve handle positions.
	Handle bool

	// Internal returns the untransformed content bounds, ignoring the
	// item's own matrix as well as any query matrix.
	Internal bool
}

// boundsQuery is a bounds computation in flight: the requested options
// plus the item under which the result will be cached, so that every
// item visited along the way can register that item for invalidation.
type boundsQuery struct {
	BoundsOptions
	cacheItem Item
}

// ItemBase is the base type for all items in the scene tree.
// It implements the [Item] interface and contains the tree structure,
// the item's transform matrix, and the bounds cache.
type ItemBase struct {

	// Name is the name of this item, used for named lookup on the
	// parent. Set it with [ItemBase.SetName] so the parent's lookup
	// structures stay consistent.
	Name string `copier:"-"`

	// This is the value of this item as its true underlying type,
	// which allows methods defined on ItemBase to call methods
	// defined on higher-level types. It is set to nil when the item
	// is destroyed.
	This Item `copier:"-"`

	// Parent is the parent of this item. It is set automatically when
	// the item is added as a child, and is nil for detached items.
	// An item has at most one parent at a time.
	Parent Item `copier:"-"`

	// Children is the list of children of this item, all of which
	// have this item set as their parent. Use the child helper
	// methods rather than modifying this directly, so indices, name
	// lookup, and caches stay consistent.
	Children []Item `copier:"-"`

	// Matrix is the item's affine transform. Mutate it through
	// [ItemBase.SetMatrix] or [ItemBase.EditMatrix] so that eager
	// application and change notification happen.
	Matrix math32.Matrix2 `copier:"-"`

	// ApplyMatrix indicates that transforms are baked directly into
	// the item's content (segment coordinates, children), keeping
	// Matrix at identity, instead of being accumulated in Matrix.
	ApplyMatrix bool

	// Visible indicates the item participates in container bounds.
	Visible bool

	// StrokeWidth is the stroke width used for stroke-inclusive
	// bounds. The full style system lives outside this kernel.
	StrokeWidth float32

	ctx *Context
	id  ID

	// index is this item's position in the parent's children list,
	// kept eagerly in sync on insertion and removal.
	index int

	// pivot is the optional user-set pivot point, in the item's own
	// coordinates.
	pivot *math32.Vector2

	// backup holds the last invertible matrix, checkpointed before a
	// non-invertible transform is prepended, so that SetBounds can
	// recover from a degenerate scale-to-zero.
	backup *math32.Matrix2

	// cachedBounds holds cached bounds per options tuple, valid for
	// the item's natural transform only.
	cachedBounds map[BoundsOptions]math32.Box2

	// dependents records, by ID, descendant items whose cached bounds
	// depend on this node. It is the parent-side registry of the
	// cache invalidation protocol.
	dependents map[ID]struct{}

	// namedChildren maps a name to the children carrying it, kept
	// consistent on insert, remove, and rename.
	namedChildren map[string][]Item

	// decomposed caches the decomposition of Matrix.
	decomposed *math32.Transforms

	// globalMatrix caches the composition of all ancestor matrices
	// with this item's own.
	globalMatrix *math32.Matrix2
}

// initItem initializes the given item in the given context, setting
// its This pointer and registering it in the context arena. All item
// constructors go through this.
func initItem(it Item, ctx *Context) {
	ib := it.AsItemBase()
	ib.This = it
	ib.ctx = ctx
	ib.id = ctx.register(it)
	ib.Matrix = math32.Identity2()
	ib.ApplyMatrix = true
	ib.Visible = true
}

func (ib *ItemBase) AsItemBase() *ItemBase { return ib }

// Context returns the context this item was created in.
func (ib *ItemBase) Context() *Context { return ib.ctx }

// ID returns this item's stable arena identifier.
func (ib *ItemBase) ID() ID { return ib.id }

// NewInstance returns a new, uninitialized instance of this item's
// concrete type.
func (ib *ItemBase) NewInstance() Item {
	return reflect.New(reflect.TypeOf(ib.This).Elem()).Interface().(Item)
}

////////  Parents and children

// HasChildren returns whether this item has any children.
func (ib *ItemBase) HasChildren() bool { return len(ib.Children) > 0 }

// NumChildren returns the number of children of this item.
func (ib *ItemBase) NumChildren() int { return len(ib.Children) }

// Child returns the child at the given index, or nil if the index is
// out of range.
func (ib *ItemBase) Child(i int) Item {
	if i < 0 || i >= len(ib.Children) {
		return nil
	}
	return ib.Children[i]
}

// IndexInParent returns this item's index in its parent's children
// list, or -1 for detached items.
func (ib *ItemBase) IndexInParent() int {
	if ib.Parent == nil {
		return -1
	}
	return ib.index
}

// ChildByName returns the first child with the given name, or nil.
func (ib *ItemBase) ChildByName(name string) Item {
	if kids := ib.namedChildren[name]; len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// ChildrenByName returns all children with the given name.
func (ib *ItemBase) ChildrenByName(name string) []Item {
	return ib.namedChildren[name]
}

// SetName sets this item's name, keeping the parent's named lookup
// structures consistent.
func (ib *ItemBase) SetName(name string) {
	if name == ib.Name {
		return
	}
	if ib.Parent != nil {
		pb := ib.Parent.AsItemBase()
		pb.removeNamed(ib.This)
		ib.Name = name
		pb.addNamed(ib.This)
	} else {
		ib.Name = name
	}
	ib.Changed(Attribute)
}

func (ib *ItemBase) addNamed(kid Item) {
	name := kid.AsItemBase().Name
	if name == "" {
		return
	}
	if ib.namedChildren == nil {
		ib.namedChildren = map[string][]Item{}
	}
	ib.namedChildren[name] = append(ib.namedChildren[name], kid)
}

func (ib *ItemBase) removeNamed(kid Item) {
	name := kid.AsItemBase().Name
	if name == "" || ib.namedChildren == nil {
		return
	}
	kids := ib.namedChildren[name]
	if i := slices.Index(kids, kid); i >= 0 {
		kids = slices.Delete(kids, i, i+1)
	}
	if len(kids) == 0 {
		delete(ib.namedChildren, name)
	} else {
		ib.namedChildren[name] = kids
	}
}

// renumber resets the cached index of children from the given
// position onward to match their list position.
func (ib *ItemBase) renumber(from int) {
	for i := from; i < len(ib.Children); i++ {
		ib.Children[i].AsItemBase().index = i
	}
}

// AddChild adds the given item at the end of the children list,
// removing it from any current parent first.
func (ib *ItemBase) AddChild(kid Item) {
	ib.InsertChild(kid, len(ib.Children))
}

// InsertChild adds the given item at the given position in the
// children list, removing it from any current parent first.
func (ib *ItemBase) InsertChild(kid Item, index int) {
	kb := kid.AsItemBase()
	if kb.Parent == ib.This {
		// moving within the same parent: adjust target index
		if kb.index < index {
			index--
		}
	}
	kb.Remove()
	index = min(max(index, 0), len(ib.Children))
	ib.Children = slices.Insert(ib.Children, index, kid)
	kb.Parent = ib.This
	ib.renumber(index)
	ib.addNamed(kid)
	clearGlobalMatrices(kid)
	ib.Changed(Children)
}

// Remove detaches this item from its parent: the parent pointer is
// cleared and the parent's cache and lookup entries for it are
// erased. The item and its children stay alive and can be reinserted.
// It returns whether the item had a parent.
func (ib *ItemBase) Remove() bool {
	if ib.Parent == nil {
		return false
	}
	pb := ib.Parent.AsItemBase()
	idx := ib.index
	if idx < 0 || idx >= len(pb.Children) || pb.Children[idx] != ib.This {
		idx = slices.Index(pb.Children, ib.This)
	}
	if idx >= 0 {
		pb.Children = slices.Delete(pb.Children, idx, idx+1)
		pb.renumber(idx)
	}
	pb.removeNamed(ib.This)
	ib.Parent = nil
	ib.index = 0
	clearGlobalMatrices(ib.This)
	pb.Changed(Children)
	return true
}

// Destroy removes this item from its parent and releases it and all
// of its children from the context arena. The item must not be used
// afterwards.
func (ib *ItemBase) Destroy() {
	if ib.This == nil { // already destroyed
		return
	}
	ib.Remove()
	kids := ib.Children
	ib.Children = nil
	for _, kid := range kids {
		kb := kid.AsItemBase()
		kb.Parent = nil
		kb.Destroy()
	}
	ib.ctx.release(ib.id)
	ib.cachedBounds = nil
	ib.dependents = nil
	ib.This = nil
}

// WalkDown calls the given function on this item and all of its
// children recursively, in depth-first order. The function returns
// whether to continue down that branch.
func (ib *ItemBase) WalkDown(fun func(it Item) bool) {
	if ib.This == nil {
		return
	}
	if !fun(ib.This) {
		return
	}
	for _, kid := range ib.Children {
		kid.AsItemBase().WalkDown(fun)
	}
}

// clearGlobalMatrices clears the cached global matrices of the given
// item and everything below it, after the item moved in the tree.
func clearGlobalMatrices(it Item) {
	it.AsItemBase().WalkDown(func(n Item) bool {
		n.AsItemBase().globalMatrix = nil
		return true
	})
}

////////  Matrix

// SetMatrix sets this item's matrix, applying it eagerly into content
// if ApplyMatrix is set, and firing the geometry change notification.
func (ib *ItemBase) SetMatrix(m math32.Matrix2) {
	ib.Matrix = m
	ib.matrixChanged()
}

// EditMatrix calls the given function with this item's matrix for
// in-place modification, then performs the same bookkeeping as
// [ItemBase.SetMatrix]. This replaces implicit mutation notification:
// collaborators must not write to Matrix directly.
func (ib *ItemBase) EditMatrix(fun func(m *math32.Matrix2)) {
	fun(&ib.Matrix)
	ib.matrixChanged()
}

// SetApplyMatrix sets whether transforms are baked directly into
// content. Turning it on bakes the accumulated matrix immediately,
// recursively through container children; the flag only sticks on
// items whose content accepts the bake.
func (ib *ItemBase) SetApplyMatrix(apply bool) {
	if !apply {
		ib.ApplyMatrix = false
		return
	}
	if !ib.ApplyMatrix {
		ib.transform(nil, true, true)
	}
}

func (ib *ItemBase) matrixChanged() {
	if ib.ApplyMatrix {
		ib.transform(nil, true, false)
	} else {
		ib.Changed(Geometry)
	}
}

// Decomposed returns the decomposition of this item's matrix, cached
// until the next geometry change. It returns ok=false for degenerate
// matrices.
func (ib *ItemBase) Decomposed() (math32.Transforms, bool) {
	if ib.decomposed != nil {
		return *ib.decomposed, true
	}
	d, ok := ib.Matrix.Decompose()
	if ok {
		ib.decomposed = &d
	}
	return d, ok
}

// GlobalMatrix returns the full transform from this item's content
// coordinates to the root's coordinates: the composition of all
// ancestor matrices with this item's own. The result is cached until
// a geometry change or a tree move.
func (ib *ItemBase) GlobalMatrix() math32.Matrix2 {
	if ib.globalMatrix != nil {
		return *ib.globalMatrix
	}
	m := ib.Matrix
	for p := ib.Parent; p != nil; p = p.AsItemBase().Parent {
		m = p.AsItemBase().Matrix.Mul(m)
	}
	ib.globalMatrix = &m
	return m
}

// Pivot returns the item's pivot point and whether one is set.
func (ib *ItemBase) Pivot() (math32.Vector2, bool) {
	if ib.pivot == nil {
		return math32.Vector2{}, false
	}
	return *ib.pivot, true
}

// SetPivot sets the item's pivot point, in its own coordinates.
func (ib *ItemBase) SetPivot(p math32.Vector2) {
	ib.pivot = &p
	ib.Changed(Attribute)
}

// ClearPivot removes the item's pivot point.
func (ib *ItemBase) ClearPivot() {
	ib.pivot = nil
	ib.Changed(Attribute)
}

// SetStrokeWidth sets the stroke width used for stroke bounds.
func (ib *ItemBase) SetStrokeWidth(w float32) {
	ib.StrokeWidth = w
	ib.Changed(Stroke)
}

// SetVisible sets the item's visibility, which controls whether it
// participates in container bounds.
func (ib *ItemBase) SetVisible(vis bool) {
	if ib.Visible == vis {
		return
	}
	ib.Visible = vis
	ib.Changed(Attribute)
	if ib.Parent != nil {
		ib.Parent.AsItemBase().Changed(Children)
	}
}

////////  Transform

// Transform transforms the item by the given matrix: the matrix is
// prepended into the item's own matrix, and baked directly into
// content if ApplyMatrix is set.
func (ib *ItemBase) Transform(m math32.Matrix2) {
	ib.transform(&m, false, false)
}

// Translate transforms the item by a translation.
func (ib *ItemBase) Translate(x, y float32) {
	ib.Transform(math32.Translate2D(x, y))
}

// Scale transforms the item by a scaling about the given center.
func (ib *ItemBase) Scale(sx, sy float32, center math32.Vector2) {
	ib.Transform(math32.Translate2D(center.X, center.Y).Scale(sx, sy).Translate(-center.X, -center.Y))
}

// Rotate transforms the item by a rotation of the given angle in
// radians about the given center.
func (ib *ItemBase) Rotate(angle float32, center math32.Vector2) {
	ib.Transform(math32.Translate2D(center.X, center.Y).Rotate(angle).Translate(-center.X, -center.Y))
}

// transform is the implementation of the transform protocol. m is the
// incoming matrix (nil for a pure re-bake), recursively requests
// baking through container children, and setApply turns ApplyMatrix
// on after a successful bake.
func (ib *ItemBase) transform(m *math32.Matrix2, recursively, setApply bool) {
	transformMatrix := m != nil && !m.IsIdentity()
	applyMatrix := setApply || ib.ApplyMatrix &&
		(transformMatrix || !ib.Matrix.IsIdentity() || recursively && len(ib.Children) > 0)
	if !transformMatrix && !applyMatrix {
		return
	}
	if transformMatrix {
		// checkpoint the last invertible matrix so SetBounds can
		// recover from a degenerate scale-to-zero
		if !m.IsInvertible() && ib.Matrix.IsInvertible() {
			bk := ib.Matrix
			ib.backup = &bk
		}
		ib.Matrix.SetMulPre(*m)
	}
	if applyMatrix {
		if ib.This.TransformContent(ib.Matrix, recursively, setApply) {
			if ib.pivot != nil {
				*ib.pivot = ib.Matrix.MulVector2AsPoint(*ib.pivot)
			}
			ib.Matrix = math32.Identity2()
			if setApply {
				ib.ApplyMatrix = true
			}
		} else {
			applyMatrix = false
		}
	} else if transformMatrix && ib.pivot != nil {
		*ib.pivot = m.MulVector2AsPoint(*ib.pivot)
	}
	if !transformMatrix && !applyMatrix {
		return
	}
	// Changed clears the cached bounds, but for matrices that only
	// translate and scale (at most flipping or quarter-turning), the
	// cached rectangles can be updated by the same transform instead
	// of being recomputed.
	bounds := ib.cachedBounds
	ib.Changed(Geometry)
	if transformMatrix && bounds != nil {
		if dec, ok := m.Decompose(); ok && dec.Skewing.IsZero() && isMultipleOf90(dec.Rotation) {
			for key, rect := range bounds {
				// internal (untransformed) bounds only move if the
				// matrix was actually baked into content
				if applyMatrix || !key.Internal {
					bounds[key] = m.MulBox2(rect)
				} else {
					delete(bounds, key)
				}
			}
			ib.cachedBounds = bounds
		}
	}
}

func isMultipleOf90(deg float32) bool {
	r := math32.Mod(math32.Abs(deg), 90)
	return r < 1e-4 || 90-r < 1e-4
}

////////  Change notification and cache invalidation

// Changed notifies the item that the given aspects of it changed,
// invalidating the caches that depend on them. Mutation methods call
// this automatically; external collaborators that bypass them
// must call it themselves.
func (ib *ItemBase) Changed(flags Changes) {
	if flags.HasFlag(Geometry) {
		ib.cachedBounds = nil
		ib.decomposed = nil
		clearGlobalMatrices(ib.This)
	}
	if ib.Parent != nil && flags.HasFlag(Geometry|Stroke) {
		clearBoundsCache(ib.Parent.AsItemBase())
	}
	if flags.HasFlag(Children | Stroke) {
		clearBoundsCache(ib)
		ib.cachedBounds = nil
	}
}

// clearBoundsCache clears the cached bounds of every item registered
// as depending on the given node, recursively through nested
// registries.
func clearBoundsCache(ib *ItemBase) {
	deps := ib.dependents
	if deps == nil {
		ib.cachedBounds = nil
		return
	}
	// Clear our own registry before iterating, so a dependent that
	// (incorrectly) points back at us terminates instead of recursing.
	ib.dependents = nil
	ib.cachedBounds = nil
	for id := range deps {
		it := ib.ctx.Item(id)
		if it == nil || it == ib.This {
			continue
		}
		ob := it.AsItemBase()
		ob.cachedBounds = nil
		if ob.dependents != nil {
			clearBoundsCache(ob)
		}
	}
}

////////  Bounds

// Bounds returns the bounding box of this item. With a nil matrix the
// item's own (natural) transform is used and the result is cached;
// with a non-nil matrix the bounds are computed under that transform
// instead, and only cached when it equals the item's own matrix.
// Containers with no visible, non-empty children return the explicit
// empty box sentinel (see [math32.Box2.IsEmpty]), never a zero box.
func (ib *ItemBase) Bounds(m *math32.Matrix2, opts BoundsOptions) math32.Box2 {
	return ib.queryBounds(m, boundsQuery{opts, ib.This})
}

// HandleBounds returns the bounding box including curve handle
// positions, under the item's own matrix or the given one.
func (ib *ItemBase) HandleBounds(m *math32.Matrix2) math32.Box2 {
	return ib.Bounds(m, BoundsOptions{Handle: true})
}

// StrokeBounds returns the bounding box expanded by the stroke extent,
// under the item's own matrix or the given one.
func (ib *ItemBase) StrokeBounds(m *math32.Matrix2) math32.Box2 {
	return ib.Bounds(m, BoundsOptions{Stroke: true})
}

// InternalBounds returns the untransformed content bounds, ignoring
// the item's own matrix.
func (ib *ItemBase) InternalBounds() math32.Box2 {
	return ib.Bounds(nil, BoundsOptions{Internal: true})
}

// queryBounds computes or retrieves bounds for one item within a
// bounds computation, registering the caching item with this item's
// parent so that invalidation reaches it.
func (ib *ItemBase) queryBounds(m *math32.Matrix2, q boundsQuery) math32.Box2 {
	if q.cacheItem != nil && ib.Parent != nil {
		pb := ib.Parent.AsItemBase()
		if pb.dependents == nil {
			pb.dependents = map[ID]struct{}{}
		}
		pb.dependents[q.cacheItem.AsItemBase().id] = struct{}{}
	}
	var own *math32.Matrix2
	if !q.Internal {
		own = &ib.Matrix
	}
	// only the natural transform is cacheable, and only on the item
	// the query was issued for
	cacheable := q.cacheItem == ib.This && (m == nil || (own != nil && *m == *own))
	if cacheable {
		if b, ok := ib.cachedBounds[q.BoundsOptions]; ok {
			return b
		}
	}
	use := m
	if use == nil {
		use = own
	}
	if use != nil && use.IsIdentity() {
		use = nil
	}
	b := ib.This.LocalBounds(use, q)
	if cacheable {
		if ib.cachedBounds == nil {
			ib.cachedBounds = map[BoundsOptions]math32.Box2{}
		}
		ib.cachedBounds[q.BoundsOptions] = b
	}
	return b
}

// Position returns the item's position: its pivot point transformed
// by its matrix if one is set, and the center of its bounds otherwise.
func (ib *ItemBase) Position() math32.Vector2 {
	if ib.pivot != nil {
		return ib.Matrix.MulVector2AsPoint(*ib.pivot)
	}
	return ib.Bounds(nil, BoundsOptions{}).Center()
}

// SetPosition translates the item so that its position becomes the
// given point.
func (ib *ItemBase) SetPosition(pos math32.Vector2) {
	d := pos.Sub(ib.Position())
	ib.Translate(d.X, d.Y)
}

// SetBounds transforms the item so that its bounds become the given
// box. If the current matrix is degenerate (e.g. after a scale to
// zero), the last invertible matrix checkpoint is restored first, so
// the item can recover its shape.
func (ib *ItemBase) SetBounds(rect math32.Box2) {
	bounds := ib.Bounds(nil, BoundsOptions{})
	center := rect.Center()
	m := math32.Translate2D(center.X, center.Y)
	size := rect.Size()
	bsize := bounds.Size()
	if size != bsize {
		if !ib.Matrix.IsInvertible() {
			if ib.backup != nil {
				ib.Matrix = *ib.backup
			} else {
				ib.Matrix = math32.Translate2D(ib.Matrix.X0, ib.Matrix.Y0)
			}
			ib.Changed(Geometry)
			bounds = ib.Bounds(nil, BoundsOptions{})
			bsize = bounds.Size()
		}
		var sx, sy float32
		if bsize.X != 0 {
			sx = size.X / bsize.X
		}
		if bsize.Y != 0 {
			sy = size.Y / bsize.Y
		}
		m = m.Scale(sx, sy)
	}
	bc := bounds.Center()
	m = m.Translate(-bc.X, -bc.Y)
	ib.Transform(m)
}

////////  Item interface defaults

func (ib *ItemBase) LocalBounds(m *math32.Matrix2, q boundsQuery) math32.Box2 {
	return math32.B2Empty()
}

func (ib *ItemBase) TransformContent(m math32.Matrix2, recursively, setApply bool) bool {
	return false
}

func (ib *ItemBase) IsEmpty() bool {
	return len(ib.Children) == 0
}

// Equals returns whether the other item has the same concrete type
// and equal matrices. Variant types extend this with their content.
func (ib *ItemBase) Equals(other Item) bool {
	if other == nil || other.AsItemBase() == nil {
		return false
	}
	return reflect.TypeOf(ib.This) == reflect.TypeOf(other.AsItemBase().This) &&
		ib.Matrix == other.AsItemBase().Matrix
}

// CopyFieldsFrom copies the exported content fields from the given
// item using copier, skipping fields tagged copier:"-" (the tree
// structure, matrix ownership, and caches). Variant types with
// unexported content override this, call it first, and then copy
// their own fields.
func (ib *ItemBase) CopyFieldsFrom(from Item) {
	err := copier.CopyWithOption(ib.This, from.AsItemBase().This,
		copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("scene.ItemBase.CopyFieldsFrom", "err", err)
	}
	ib.Matrix = from.AsItemBase().Matrix
	if piv, ok := from.AsItemBase().Pivot(); ok {
		ib.pivot = &piv
	}
}

// Clone returns a deep copy of this item and its children, registered
// in the same context and not attached to any parent.
func (ib *ItemBase) Clone() Item {
	nc := ib.NewInstance()
	initItem(nc, ib.ctx)
	nb := nc.AsItemBase()
	nb.Name = ib.Name
	nc.CopyFieldsFrom(ib.This)
	for _, kid := range ib.Children {
		nb.AddChild(kid.AsItemBase().Clone())
	}
	return nc
}
