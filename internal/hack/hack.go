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

package hack

import (
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// ByteSliceToString converts []byte to string without copy.
// b must not be modified after the call.
func ByteSliceToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// CloneString returns a copy of s backed by a freshly allocated buffer.
// It never returns s itself, even for empty input where the result
// shares no memory with anything.
func CloneString[T ~string | ~[]byte](s T) string {
	if len(s) == 0 {
		return ""
	}
	b := dirtmake.Bytes(len(s), len(s))
	copy(b, s)
	return ByteSliceToString(b)
}
