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
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/sharedstr/internal/hack"
	"github.com/cloudwego/sharedstr/sharedstr"
)

func randStrings(m, n int) []string {
	b := make([]byte, m*n)
	rand.Read(b)
	ret := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s := b[m*i:]
		s = s[:m]
		ret = append(ret, hack.ByteSliceToString(s))
	}
	return ret
}

// newStdStrMap generates a map with uniq values
func newStdStrMap(ss []string) map[string]uint {
	v := uint(1)
	m := make(map[string]uint)
	for _, s := range ss {
		_, ok := m[s]
		if !ok {
			m[s] = v
			v++
		}
	}
	return m
}

func TestStrMap(t *testing.T) {
	ss := randStrings(20, 100000)
	m := newStdStrMap(ss)
	sm := NewFromMap(m)
	require.Equal(t, len(m), sm.Len())
	for i, s := range ss {
		v0 := m[s]
		v1, _ := sm.Get(s)
		require.Equal(t, v0, v1, i)
	}
	for i, s := range randStrings(20, 100000) {
		v0, ok0 := m[s]
		v1, ok1 := sm.Get(s)
		require.Equal(t, ok0, ok1, i)
		require.Equal(t, v0, v1, i)
	}
	m0 := make(map[string]uint)
	for i := 0; i < sm.Len(); i++ {
		k, v := sm.Item(i)
		require.Equal(t, 1, k.Refs(), i)
		m0[k.View()] = v
	}
	require.Equal(t, m, m0)
}

func TestStrMapSharedKeys(t *testing.T) {
	kk := sharedstr.FromStrings([]string{"foo", "bar", "", "baz"})
	vv := []int{1, 2, 3, 4}
	sm := NewFromSlice(kk, vv)
	require.Equal(t, 4, sm.Len())
	for i, k := range kk {
		require.Equal(t, 2, k.Refs(), i)

		v, ok := sm.Get(k.View())
		require.True(t, ok)
		require.Equal(t, vv[i], v)

		// independent construction, different buffer, same content
		other := sharedstr.New(k.View())
		v, ok = sm.GetShared(other)
		require.True(t, ok)
		require.Equal(t, vv[i], v)
	}
	_, ok := sm.Get("qux")
	require.False(t, ok)

	// dropping caller handles leaves the map intact
	for i := range kk {
		kk[i].Release()
	}
	v, ok := sm.Get("foo")
	require.True(t, ok)
	require.Equal(t, 1, v)
	for i := 0; i < sm.Len(); i++ {
		k, _ := sm.Item(i)
		require.Equal(t, 1, k.Refs())
	}

	require.Error(t, sm.LoadFromSlice(kk, []int{1}))

	sm.Reset()
	require.Equal(t, 0, sm.Len())
	_, ok = sm.Get("foo")
	require.False(t, ok)
}

func TestStrMapEmpty(t *testing.T) {
	sm := New[int]()
	_, ok := sm.Get("")
	require.False(t, ok)

	sm = NewFromMap(map[string]int{})
	_, ok = sm.Get("x")
	require.False(t, ok)
}

func TestStrMapString(t *testing.T) {
	ss := []string{"a", "b", "c"}
	m := newStdStrMap(ss)
	sm := NewFromMap(m)
	t.Log(sm.String())
	t.Log(sm.debugString())

	sm = NewFromMap(map[string]uint{"a": 1})
	require.Equal(t, "{\n\"a\": 1,\n}", sm.String())
}

func TestStr2Str(t *testing.T) {
	m := map[string]string{"a": "x", "b": "y", "c": ""}
	sm := NewStr2StrFromMap(m)
	require.Equal(t, 3, sm.Len())
	for k, v := range m {
		got, ok := sm.Get(k)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
	_, ok := sm.Get("d")
	require.False(t, ok)

	kk := sharedstr.FromStrings([]string{"k"})
	vv := sharedstr.FromStrings([]string{"v"})
	require.NoError(t, sm.LoadFromSlice(kk, vv))
	require.Equal(t, 2, vv[0].Refs())
	sv, ok := sm.GetShared("k")
	require.True(t, ok)
	require.True(t, sharedstr.SameBuffer(vv[0], sv))
	_, ok = sm.Get("a")
	require.False(t, ok)

	require.NoError(t, sm.LoadFromSlice(nil, nil))
	require.Equal(t, 1, vv[0].Refs())

	require.Error(t, sm.LoadFromSlice(kk, nil))
}

func BenchmarkGet(b *testing.B) {
	sizes := []int{20, 50, 100}
	nn := []int{100000, 200000}

	for _, n := range nn {
		for _, sz := range sizes {
			ss := randStrings(sz, n)
			m := newStdStrMap(ss)
			b.Run(fmt.Sprintf("std-keysize_%d_n_%d", sz, n), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_ = m[ss[i%len(ss)]]
				}
			})
			b.Run(fmt.Sprintf("new-keysize_%d_n_%d", sz, n), func(b *testing.B) {
				sm := NewFromMap(m)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					sm.Get(ss[i%len(ss)])
				}
			})
		}
	}
}
