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

package strmap

import (
	"errors"
	"fmt"
	"hash/maphash"
	"sort"
	"strings"

	"github.com/cloudwego/sharedstr/sharedstr"
)

// StrMap represents a readonly map keyed by sharedstr.String.
//
// Slots are computed from the key handles at load time and looked up by
// hashing plain strings, which works because a String hashes exactly like
// its content.
type StrMap[V any] struct {
	// `items` holds keys and values, keys are counted clones
	items []mapItem[V]

	// max hashtable ~ 2 billions which means len(items) < the num as well.
	hashtable []int32 // using int32 for mem efficiency

	seed maphash.Seed
}

type mapItem[V any] struct {
	k    sharedstr.String
	slot uint32
	v    V
}

// New creates a StrMap instance,
func New[V any]() *StrMap[V] {
	return &StrMap[V]{seed: maphash.MakeSeed()}
}

// NewFromMap creates StrMap from map, each key gets its own buffer.
func NewFromMap[V any](m map[string]V) *StrMap[V] {
	ret := New[V]()
	if err := ret.LoadFromMap(m); err != nil {
		panic(err)
	}
	return ret
}

// NewFromSlice creates StrMap from slices, len(kk) must equal to len(vv)
func NewFromSlice[V any](kk []sharedstr.String, vv []V) *StrMap[V] {
	ret := New[V]()
	if err := ret.LoadFromSlice(kk, vv); err != nil {
		panic(err)
	}
	return ret
}

// LoadFromMap resets StrMap and loads from map
func (m *StrMap[V]) LoadFromMap(src map[string]V) error {
	kk := make([]sharedstr.String, 0, len(src))
	vv := make([]V, 0, len(src))
	for k, v := range src {
		kk = append(kk, sharedstr.New(k))
		vv = append(vv, v)
	}
	err := m.LoadFromSlice(kk, vv)
	for i := range kk {
		kk[i].Release() // m holds its own clones
	}
	return err
}

// LoadFromSlice resets StrMap and loads from slices, len(kk) must equal to len(vv).
// StrMap keeps a clone of every key, the caller keeps its own handles.
func (m *StrMap[V]) LoadFromSlice(kk []sharedstr.String, vv []V) error {
	if len(kk) != len(vv) {
		return errors.New("kv len not match")
	}
	m.Reset()
	if cap(m.items) < len(vv) {
		m.items = make([]mapItem[V], 0, len(vv))
	}
	for i, k := range kk {
		m.items = append(m.items,
			mapItem[V]{
				k:    k.Clone(),
				slot: uint32(k.Hash(m.seed)),
				v:    vv[i],
			})
	}
	m.makeHashtable()
	return nil
}

// Reset releases all keys held by the map and empties it.
func (m *StrMap[V]) Reset() {
	var zero mapItem[V]
	for i := range m.items {
		m.items[i].k.Release()
		m.items[i] = zero
	}
	m.items = m.items[:0]
	m.hashtable = m.hashtable[:0]
}

// Len returns the size of map
func (m *StrMap[V]) Len() int {
	return len(m.items)
}

// Item returns the i'th item in map.
// It panics if i is not in the range [0, Len()).
func (m *StrMap[V]) Item(i int) (sharedstr.String, V) {
	e := &m.items[i]
	return e.k, e.v
}

type itemsBySlot[V any] []mapItem[V]

func (x itemsBySlot[V]) Len() int           { return len(x) }
func (x itemsBySlot[V]) Less(i, j int) bool { return x[i].slot < x[j].slot }
func (x itemsBySlot[V]) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

func (m *StrMap[V]) makeHashtable() {
	slots := calcHashtableSlots(len(m.items))
	if cap(m.hashtable) < int(slots) {
		m.hashtable = make([]int32, slots)
	} else {
		m.hashtable = m.hashtable[:slots]
	}

	for i := range m.items {
		m.items[i].slot = m.items[i].slot % uint32(slots)
	}

	// items with the same slot stay together, Get scans forward on conflict
	sort.Sort(itemsBySlot[V](m.items))

	for i := 0; i < len(m.hashtable); i++ {
		m.hashtable[i] = -1
	}
	for i := range m.items {
		e := &m.items[i]
		if m.hashtable[e.slot] < 0 {
			m.hashtable[e.slot] = int32(i)
		}
	}
}

// Get returns the value of the key whose content equals s.
func (m *StrMap[V]) Get(s string) (t V, ok bool) {
	if len(m.hashtable) == 0 {
		return t, false
	}
	slot := uint32(maphash.String(m.seed, s)) % uint32(len(m.hashtable))
	i := m.hashtable[slot]
	if i < 0 {
		return t, false
	}
	// collision, worst O(n)
	// i always points to the 1st item with the same slot,
	// can scan till m.items ends or e.slot != slot.
	for j := i; j < int32(len(m.items)); j++ {
		e := &m.items[j]
		if e.slot != slot {
			break
		}
		if e.k.EqualString(s) {
			return e.v, true
		}
	}
	return t, false
}

// GetShared is Get with a String key.
func (m *StrMap[V]) GetShared(k sharedstr.String) (V, bool) {
	return m.Get(k.View())
}

// String ...
func (m *StrMap[V]) String() string {
	b := &strings.Builder{}
	b.WriteString("{\n")
	for _, e := range m.items {
		fmt.Fprintf(b, "%q: %v,\n", e.k, e.v)
	}
	b.WriteString("}")
	return b.String()
}

func (m *StrMap[V]) debugString() string {
	b := &strings.Builder{}
	b.WriteString("{\n")
	for _, e := range m.items {
		fmt.Fprintf(b, "{slot:%x, refs:%d, str:%q, v:%v},\n", e.slot, e.k.Refs(), e.k, e.v)
	}
	fmt.Fprintf(b, "}(slots=%d, items=%d)", len(m.hashtable), len(m.items))
	return b.String()
}

// Str2Str is a StrMap with String values, used to store map[string]string.
type Str2Str struct {
	strMap *StrMap[sharedstr.String]
}

func NewStr2Str() *Str2Str {
	return &Str2Str{strMap: New[sharedstr.String]()}
}

// NewStr2StrFromSlice creates Str2Str from key, value slices.
func NewStr2StrFromSlice(kk, vv []sharedstr.String) *Str2Str {
	m := NewStr2Str()
	if err := m.LoadFromSlice(kk, vv); err != nil {
		panic(err)
	}
	return m
}

// NewStr2StrFromMap creates Str2Str from map.
func NewStr2StrFromMap(m map[string]string) *Str2Str {
	sm := NewStr2Str()
	sm.LoadFromMap(m)
	return sm
}

// LoadFromSlice resets Str2Str and loads from slices. Values are cloned.
func (sm *Str2Str) LoadFromSlice(kk, vv []sharedstr.String) error {
	if len(kk) != len(vv) {
		return errors.New("kv len not match")
	}
	old := make([]sharedstr.String, 0, sm.strMap.Len())
	for i := range sm.strMap.items {
		old = append(old, sm.strMap.items[i].v)
	}
	vs := make([]sharedstr.String, len(vv))
	for i := range vv {
		vs[i] = vv[i].Clone()
	}
	if err := sm.strMap.LoadFromSlice(kk, vs); err != nil {
		for i := range vs {
			vs[i].Release()
		}
		return err
	}
	for i := range old {
		old[i].Release()
	}
	return nil
}

// LoadFromMap resets Str2Str and loads from map.
func (sm *Str2Str) LoadFromMap(m map[string]string) {
	kk := make([]sharedstr.String, 0, len(m))
	vv := make([]sharedstr.String, 0, len(m))
	for k, v := range m {
		kk = append(kk, sharedstr.New(k))
		vv = append(vv, sharedstr.New(v))
	}
	if err := sm.LoadFromSlice(kk, vv); err != nil {
		panic(err)
	}
	for i := range kk {
		kk[i].Release()
		vv[i].Release()
	}
}

// Get ...
func (sm *Str2Str) Get(k string) (string, bool) {
	if v, ok := sm.strMap.Get(k); ok {
		return v.View(), true
	}
	return "", false
}

// GetShared returns the value handle, it's not a counted clone.
func (sm *Str2Str) GetShared(k string) (sharedstr.String, bool) {
	return sm.strMap.Get(k)
}

// Len returns the size of map
func (sm *Str2Str) Len() int {
	return sm.strMap.Len()
}
