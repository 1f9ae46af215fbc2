/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sharedstr

import "slices"

// Set is a set of String keyed by content.
//
// Lookups accept a plain string, no String needs to be constructed for
// them. The map key is the handle's own view, so Add copies no content.
type Set struct {
	m map[string]String
}

// NewSet creates a Set containing items.
func NewSet(items ...String) *Set {
	s := &Set{m: make(map[string]String, len(items))}
	for _, x := range items {
		s.Add(x)
	}
	return s
}

// Add inserts a clone of x, it returns false if equal content is already
// present. The handle stored first is kept.
func (s *Set) Add(x String) bool {
	if s.m == nil {
		s.m = make(map[string]String)
	}
	k := x.View()
	if _, ok := s.m[k]; ok {
		return false
	}
	s.m[k] = x.Clone()
	return true
}

// Contains reports whether the set holds the content k.
func (s *Set) Contains(k string) bool {
	_, ok := s.m[k]
	return ok
}

// ContainsShared reports whether the set holds the content of x.
func (s *Set) ContainsShared(x String) bool {
	return s.Contains(x.View())
}

// Get returns the stored handle whose content equals k.
// The result is not counted, Clone it to keep it past Remove.
func (s *Set) Get(k string) (String, bool) {
	x, ok := s.m[k]
	return x, ok
}

// Remove deletes k, releasing the stored handle, and reports whether it
// was present.
func (s *Set) Remove(k string) bool {
	x, ok := s.m[k]
	if !ok {
		return false
	}
	delete(s.m, k)
	x.Release()
	return true
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.m)
}

// Range calls f for every element until f returns false.
// The order is unspecified.
func (s *Set) Range(f func(String) bool) {
	for _, x := range s.m {
		if !f(x) {
			return
		}
	}
}

// Sorted returns the elements ordered by content.
func (s *Set) Sorted() []String {
	ret := make([]String, 0, len(s.m))
	for _, x := range s.m {
		ret = append(ret, x)
	}
	slices.SortFunc(ret, String.Compare)
	return ret
}

type mapEntry[V any] struct {
	k String
	v V
}

// Map is a map keyed by String content, with plain string lookups.
type Map[V any] struct {
	m map[string]mapEntry[V]
}

// NewMap creates an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{m: make(map[string]mapEntry[V])}
}

// Put sets the value of k. A new key is stored as a clone of k, if equal
// content is already present its original key handle is kept.
func (m *Map[V]) Put(k String, v V) {
	if m.m == nil {
		m.m = make(map[string]mapEntry[V])
	}
	if e, ok := m.m[k.View()]; ok {
		m.m[e.k.View()] = mapEntry[V]{k: e.k, v: v}
		return
	}
	k = k.Clone()
	m.m[k.View()] = mapEntry[V]{k: k, v: v}
}

// Get returns the value stored for the content k.
func (m *Map[V]) Get(k string) (v V, ok bool) {
	e, ok := m.m[k]
	return e.v, ok
}

// GetShared is Get with a String key.
func (m *Map[V]) GetShared(k String) (V, bool) {
	return m.Get(k.View())
}

// Key returns the stored key handle whose content equals k.
// The result is not counted, Clone it to keep it past Delete.
func (m *Map[V]) Key(k string) (String, bool) {
	e, ok := m.m[k]
	return e.k, ok
}

// Delete removes k, releasing the stored key handle, and reports whether
// it was present.
func (m *Map[V]) Delete(k string) bool {
	e, ok := m.m[k]
	if !ok {
		return false
	}
	delete(m.m, k)
	e.k.Release()
	return true
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.m)
}

// Range calls f for every entry until f returns false.
func (m *Map[V]) Range(f func(String, V) bool) {
	for _, e := range m.m {
		if !f(e.k, e.v) {
			return
		}
	}
}
