package ecs

import "iter"

// viewFilter holds a view's predicates. They are evaluated on every advance,
// never cached, so a view always reflects the current store contents.
type viewFilter struct {
	m       *EntityManager
	with    []ComponentTypeID // with[0] is the lead type
	without []ComponentTypeID
	enabled bool
}

func (f *viewFilter) exclude(ids []ComponentTypeID) {
	f.without = append(f.without, ids...)
}

func (f *viewFilter) accepts(id EntityID) bool {
	if !f.m.entities.Alive(id) {
		return false
	}
	for _, tid := range f.with[1:] {
		if s := f.m.store(tid); s == nil || !s.Contains(id) {
			return false
		}
	}
	for _, tid := range f.without {
		if s := f.m.store(tid); s != nil && s.Contains(id) {
			return false
		}
	}
	if f.enabled {
		for _, tid := range f.with {
			ops := f.m.ops.Ops(tid)
			if ops.IsEnabled != nil && !ops.IsEnabled(f.m.store(tid).Raw(id)) {
				return false
			}
		}
	}
	return true
}

func (f *viewFilter) cursor() *Cursor {
	return &Cursor{filter: f, lead: f.m.store(f.with[0]), pos: -1}
}

// Cursor steps through the lead type's dense storage, stopping only on
// entities that pass every filter.
type Cursor struct {
	filter *viewFilter
	lead   storage
	pos    int
	cur    EntityID
}

// Next seeks forward from the current raw position to the next passing
// entity. Returns false once the lead store is exhausted.
func (c *Cursor) Next() bool {
	if c.lead == nil {
		return false
	}
	for c.pos++; c.pos < c.lead.Len(); c.pos++ {
		id := c.lead.EntityAt(c.pos)
		if c.filter.accepts(id) {
			c.cur = id
			return true
		}
	}
	return false
}

// Entity is the current entity's index.
func (c *Cursor) Entity() EntityID { return c.cur }

func (c *Cursor) Handle() EntityHandle {
	h, _ := c.filter.m.entities.Current(c.cur)
	return h
}

func (c *Cursor) Object() GameObject {
	return NewGameObject(c.filter.m, c.Handle())
}

type Row1[A any] struct {
	Object GameObject
	C1     *A
}

type Row2[A, B any] struct {
	Object GameObject
	C1     *A
	C2     *B
}

type Row3[A, B, C any] struct {
	Object GameObject
	C1     *A
	C2     *B
	C3     *C
}

// View1 iterates every entity with an A.
type View1[A any] struct{ f viewFilter }

func NewView1[A any](m *EntityManager) *View1[A] {
	return &View1[A]{f: viewFilter{m: m, with: []ComponentTypeID{TypeID[A]()}}}
}

// Exclude drops entities carrying any of the given types.
func (v *View1[A]) Exclude(ids ...ComponentTypeID) *View1[A] { v.f.exclude(ids); return v }

// WhereEnabled drops entities whose requested components report IsEnabled false.
func (v *View1[A]) WhereEnabled() *View1[A] { v.f.enabled = true; return v }

func (v *View1[A]) Cursor() *Cursor { return v.f.cursor() }

func (v *View1[A]) Each(fn func(GameObject, *A)) {
	sa := StoreOf[A](v.f.m)
	for c := v.Cursor(); c.Next(); {
		fn(c.Object(), sa.Get(c.Entity()))
	}
}

func (v *View1[A]) Rows() iter.Seq[Row1[A]] {
	return func(yield func(Row1[A]) bool) {
		sa := StoreOf[A](v.f.m)
		for c := v.Cursor(); c.Next(); {
			if !yield(Row1[A]{Object: c.Object(), C1: sa.Get(c.Entity())}) {
				return
			}
		}
	}
}

func (v *View1[A]) First() (Row1[A], bool) {
	for r := range v.Rows() {
		return r, true
	}
	return Row1[A]{}, false
}

func (v *View1[A]) Count() int { return count(v.Cursor()) }

// View2 iterates every entity with both an A and a B, led by A's storage.
type View2[A, B any] struct{ f viewFilter }

func NewView2[A, B any](m *EntityManager) *View2[A, B] {
	return &View2[A, B]{f: viewFilter{m: m, with: []ComponentTypeID{TypeID[A](), TypeID[B]()}}}
}

func (v *View2[A, B]) Exclude(ids ...ComponentTypeID) *View2[A, B] { v.f.exclude(ids); return v }
func (v *View2[A, B]) WhereEnabled() *View2[A, B]                  { v.f.enabled = true; return v }
func (v *View2[A, B]) Cursor() *Cursor                             { return v.f.cursor() }

func (v *View2[A, B]) Each(fn func(GameObject, *A, *B)) {
	sa, sb := StoreOf[A](v.f.m), StoreOf[B](v.f.m)
	for c := v.Cursor(); c.Next(); {
		id := c.Entity()
		fn(c.Object(), sa.Get(id), sb.Get(id))
	}
}

func (v *View2[A, B]) Rows() iter.Seq[Row2[A, B]] {
	return func(yield func(Row2[A, B]) bool) {
		sa, sb := StoreOf[A](v.f.m), StoreOf[B](v.f.m)
		for c := v.Cursor(); c.Next(); {
			id := c.Entity()
			if !yield(Row2[A, B]{Object: c.Object(), C1: sa.Get(id), C2: sb.Get(id)}) {
				return
			}
		}
	}
}

func (v *View2[A, B]) First() (Row2[A, B], bool) {
	for r := range v.Rows() {
		return r, true
	}
	return Row2[A, B]{}, false
}

func (v *View2[A, B]) Count() int { return count(v.Cursor()) }

// View3 iterates every entity with an A, a B and a C, led by A's storage.
type View3[A, B, C any] struct{ f viewFilter }

func NewView3[A, B, C any](m *EntityManager) *View3[A, B, C] {
	return &View3[A, B, C]{f: viewFilter{m: m, with: []ComponentTypeID{TypeID[A](), TypeID[B](), TypeID[C]()}}}
}

func (v *View3[A, B, C]) Exclude(ids ...ComponentTypeID) *View3[A, B, C] { v.f.exclude(ids); return v }
func (v *View3[A, B, C]) WhereEnabled() *View3[A, B, C]                  { v.f.enabled = true; return v }
func (v *View3[A, B, C]) Cursor() *Cursor                                { return v.f.cursor() }

func (v *View3[A, B, C]) Each(fn func(GameObject, *A, *B, *C)) {
	sa, sb, sc := StoreOf[A](v.f.m), StoreOf[B](v.f.m), StoreOf[C](v.f.m)
	for c := v.Cursor(); c.Next(); {
		id := c.Entity()
		fn(c.Object(), sa.Get(id), sb.Get(id), sc.Get(id))
	}
}

func (v *View3[A, B, C]) Rows() iter.Seq[Row3[A, B, C]] {
	return func(yield func(Row3[A, B, C]) bool) {
		sa, sb, sc := StoreOf[A](v.f.m), StoreOf[B](v.f.m), StoreOf[C](v.f.m)
		for c := v.Cursor(); c.Next(); {
			id := c.Entity()
			if !yield(Row3[A, B, C]{Object: c.Object(), C1: sa.Get(id), C2: sb.Get(id), C3: sc.Get(id)}) {
				return
			}
		}
	}
}

func (v *View3[A, B, C]) First() (Row3[A, B, C], bool) {
	for r := range v.Rows() {
		return r, true
	}
	return Row3[A, B, C]{}, false
}

func (v *View3[A, B, C]) Count() int { return count(v.Cursor()) }

func count(c *Cursor) int {
	n := 0
	for c.Next() {
		n++
	}
	return n
}
