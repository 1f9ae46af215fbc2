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

// Package sharedstr provides String, an immutable string handle which shares
// one buffer between all of its clones.
//
// A String behaves like the text it holds: equality, ordering, hashing and
// formatting are all defined by content and never by which buffer a handle
// points to. Two calls to New with the same text allocate two buffers which
// compare equal. Nothing is interned.
//
// String is not safe for concurrent use. The share count is a plain int
// updated by Clone and Release.
package sharedstr

import (
	"hash/maphash"
	"strconv"
	"strings"

	"github.com/bytedance/gopkg/util/xxhash3"

	"github.com/cloudwego/sharedstr/internal/hack"
)

type buffer struct {
	s    string // immutable after New
	refs int
}

// String is a shared, immutable string handle.
//
// The zero value is an empty string with no buffer.
//
// String is not comparable: == would compare buffers rather than content.
// Use Equal, or the containers in this package for map keys.
// A plain assignment copies the handle without counting it, use Clone for
// a counted copy.
type String struct {
	_ [0]func()
	b *buffer
}

// New creates a String holding a private copy of v.
func New[T ~string | ~[]byte](v T) String {
	return String{b: &buffer{s: hack.CloneString(v), refs: 1}}
}

// FromStrings creates one String per element of ss.
func FromStrings(ss []string) []String {
	ret := make([]String, len(ss))
	for i, s := range ss {
		ret[i] = New(s)
	}
	return ret
}

// Clone returns a handle to the same buffer and increments the share count.
func (s String) Clone() String {
	if s.b != nil {
		s.b.refs++
	}
	return String{b: s.b}
}

// Release drops the handle's share and resets it to the zero value.
// Other handles to the buffer are unaffected.
//
// Only handles returned by New or Clone own a share and may be released.
// Releasing an alias made by plain assignment drops a share its origin
// still holds.
func (s *String) Release() {
	if s.b == nil {
		return
	}
	if s.b.refs > 0 {
		s.b.refs--
	}
	s.b = nil
}

// Refs returns the number of counted handles sharing the buffer.
func (s String) Refs() int {
	if s.b == nil {
		return 0
	}
	return s.b.refs
}

// SameBuffer reports whether a and b point to the same buffer.
// It is an identity check, for content use Equal.
func SameBuffer(a, b String) bool {
	return a.b == b.b
}

// View returns the content. The result shares memory with the handle.
func (s String) View() string {
	if s.b == nil {
		return ""
	}
	return s.b.s
}

// String implements fmt.Stringer and returns the raw content.
func (s String) String() string {
	return s.View()
}

// GoString implements fmt.GoStringer, it formats like a quoted string literal.
func (s String) GoString() string {
	return strconv.Quote(s.View())
}

// Len returns the length in bytes.
func (s String) Len() int {
	return len(s.View())
}

// IsEmpty reports whether Len() == 0.
func (s String) IsEmpty() bool {
	return s.Len() == 0
}

// At returns the i'th byte. It panics if i is out of range.
func (s String) At(i int) byte {
	return s.View()[i]
}

// Slice returns s[i:j] as a string without copy.
func (s String) Slice(i, j int) string {
	return s.View()[i:j]
}

// Bytes returns a copy of the content.
func (s String) Bytes() []byte {
	return []byte(s.View())
}

// AppendTo appends the content to dst.
func (s String) AppendTo(dst []byte) []byte {
	return append(dst, s.View()...)
}

// Equal reports whether s and o hold the same content.
func (s String) Equal(o String) bool {
	if s.b == o.b {
		return true
	}
	return s.View() == o.View()
}

// EqualString reports whether s holds the content x.
func (s String) EqualString(x string) bool {
	return s.View() == x
}

// Compare returns an integer comparing the content of s and o
// lexicographically, like strings.Compare.
func (s String) Compare(o String) int {
	if s.b == o.b {
		return 0
	}
	return strings.Compare(s.View(), o.View())
}

// CompareString is like Compare with a plain string.
func (s String) CompareString(x string) int {
	return strings.Compare(s.View(), x)
}

// Less reports whether s sorts before o.
func (s String) Less(o String) bool {
	return s.Compare(o) < 0
}

// Hash returns maphash.String(seed, s.View()).
func (s String) Hash(seed maphash.Seed) uint64 {
	return maphash.String(seed, s.View())
}

// WriteHash adds the content to h, exactly as h.WriteString(s.View()) does.
func (s String) WriteHash(h *maphash.Hash) {
	_, _ = h.WriteString(s.View())
}

// Sum64 returns xxhash3.HashString(s.View()), an unseeded content hash
// for sharding or bucketing handles without a maphash.Seed at hand.
func (s String) Sum64() uint64 {
	return xxhash3.HashString(s.View())
}
