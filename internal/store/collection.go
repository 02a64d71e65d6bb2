package store

// Collection is a strongly-typed view over one of the document's arrays.
// All collections share the same engine: reads copy under the store lock,
// mutations rewrite the slice and flush the whole document before returning.
type Collection[T any] struct {
	store *Store
	slice func(*Document) *[]T
}

// All returns a snapshot copy of every record.
func (c *Collection[T]) All() []T {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	src := *c.slice(&c.store.doc)
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// Find returns the first record matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	for _, rec := range *c.slice(&c.store.doc) {
		if pred(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns a copy of every record matching pred.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	out := []T{}
	for _, rec := range *c.slice(&c.store.doc) {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Count returns the number of records matching pred.
func (c *Collection[T]) Count(pred func(T) bool) int {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	n := 0
	for _, rec := range *c.slice(&c.store.doc) {
		if pred(rec) {
			n++
		}
	}
	return n
}

// Insert appends the record and flushes. Uniqueness invariants (id,
// username, email, title) are the caller's responsibility, the engine
// itself only appends.
func (c *Collection[T]) Insert(rec T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	target := c.slice(&c.store.doc)
	*target = append(*target, rec)
	if err := c.store.flushLocked(); err != nil {
		// Roll the append back so memory never diverges from disk.
		*target = (*target)[:len(*target)-1]
		return err
	}
	return nil
}

// Update applies patch to the first record matching pred and flushes.
// Returns the patched record, or found=false when nothing matched.
func (c *Collection[T]) Update(pred func(T) bool, patch func(*T)) (T, bool, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	var zero T
	target := c.slice(&c.store.doc)
	for i := range *target {
		if !pred((*target)[i]) {
			continue
		}
		before := (*target)[i]
		patch(&(*target)[i])
		if err := c.store.flushLocked(); err != nil {
			(*target)[i] = before
			return zero, true, err
		}
		return (*target)[i], true, nil
	}
	return zero, false, nil
}

// Remove deletes every record matching pred and flushes. Returns how many
// records were removed.
func (c *Collection[T]) Remove(pred func(T) bool) (int, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	target := c.slice(&c.store.doc)
	before := *target
	kept := make([]T, 0, len(before))
	for _, rec := range before {
		if !pred(rec) {
			kept = append(kept, rec)
		}
	}

	removed := len(before) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	*target = kept
	if err := c.store.flushLocked(); err != nil {
		*target = before
		return 0, err
	}
	return removed, nil
}
