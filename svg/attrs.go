package svg

// Attrs is an insertion-ordered string-to-string map used for element
// attributes. Order is semantically observable: the serializer emits
// attributes in the order Attrs reports them, and re-setting an existing key
// does not move it. This mirrors the keys-slice-plus-map shape of the
// teacher's OrderedMap (xml/map.go), specialized to string values only.
type Attrs struct {
	keys   []string
	values map[string]string
}

// NewAttrs creates an empty, insertion-ordered attribute map.
func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]string)}
}

// Get returns the value for name and whether it was present.
func (a *Attrs) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Value returns the value for name, or "" if absent.
func (a *Attrs) Value(name string) string {
	return a.values[name]
}

// Has reports whether name is present.
func (a *Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Set inserts or updates name. Updating an existing key retains its position.
func (a *Attrs) Set(name, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, exists := a.values[name]; !exists {
		a.keys = append(a.keys, name)
	}
	a.values[name] = value
}

// Remove deletes name, preserving the relative order of the remaining keys.
func (a *Attrs) Remove(name string) {
	if _, exists := a.values[name]; !exists {
		return
	}
	delete(a.values, name)
	for i, k := range a.keys {
		if k == name {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Rename moves the value stored under old to new, preserving old's position.
// If new already exists elsewhere in the map, that other entry is dropped.
func (a *Attrs) Rename(oldName, newName string) {
	v, ok := a.values[oldName]
	if !ok || oldName == newName {
		return
	}
	if a.Has(newName) {
		a.Remove(newName)
	}
	delete(a.values, oldName)
	a.values[newName] = v
	for i, k := range a.keys {
		if k == oldName {
			a.keys[i] = newName
			break
		}
	}
}

// Len returns the number of attributes.
func (a *Attrs) Len() int { return len(a.keys) }

// Keys returns the attribute names in insertion order. The returned slice is
// owned by the caller.
func (a *Attrs) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Each iterates attributes in order, stopping early if fn returns false.
func (a *Attrs) Each(fn func(name, value string) bool) {
	for _, k := range a.keys {
		if !fn(k, a.values[k]) {
			return
		}
	}
}

// RetainFunc keeps only the attributes for which keep returns true,
// preserving the relative order of survivors. This is the "retain in place"
// operation the ordering invariants in spec.md §9 require of the attribute
// map.
func (a *Attrs) RetainFunc(keep func(name, value string) bool) {
	newKeys := a.keys[:0:0]
	for _, k := range a.keys {
		if keep(k, a.values[k]) {
			newKeys = append(newKeys, k)
		} else {
			delete(a.values, k)
		}
	}
	a.keys = newKeys
}

// Reorder replaces the key order with order, which must be a permutation of
// the current keys. Used by sort-attrs. Unknown names in order are ignored;
// any current key missing from order is appended at the end in its old
// relative order, so Reorder never silently drops an attribute.
func (a *Attrs) Reorder(order []string) {
	seen := make(map[string]bool, len(order))
	newKeys := make([]string, 0, len(a.keys))
	for _, k := range order {
		if _, ok := a.values[k]; ok && !seen[k] {
			newKeys = append(newKeys, k)
			seen[k] = true
		}
	}
	for _, k := range a.keys {
		if !seen[k] {
			newKeys = append(newKeys, k)
			seen[k] = true
		}
	}
	a.keys = newKeys
}

// Clone returns a deep copy.
func (a *Attrs) Clone() *Attrs {
	out := &Attrs{
		keys:   make([]string, len(a.keys)),
		values: make(map[string]string, len(a.values)),
	}
	copy(out.keys, a.keys)
	for k, v := range a.values {
		out.values[k] = v
	}
	return out
}
