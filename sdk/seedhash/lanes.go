// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package seedhash

import (
	"math/bits"

	"github.com/zintix-labs/seedlab/errs"
)

const maxLanes = 8

// lanes 為同步計算的多 lane hasher，每個 lane 只在 w[9]（秒數）不同。
type lanes struct {
	base  *SHA1
	n     int
	time9 [maxLanes]uint32
}

func (l *lanes) setTime(hour, minute, second int) error {
	n := l.n
	if second < 0 || second+n-1 >= 60 {
		return errs.Warnf("x%d hasher: second %d leaves lanes past 59", n, second)
	}
	for i := 0; i < n; i++ {
		l.time9[i] = TimeWord(hour, minute, second+i, l.base.ds3)
	}
	return nil
}

// hashLanes 以 lane-major 迴圈同步展開與壓縮，dst 長度須等於 lane 數。
func hashLanes(base *[16]uint32, time9 []uint32, alpha Alpha, dst []uint64) {
	n := len(time9)
	var w [80][maxLanes]uint32
	for t := 0; t < 16; t++ {
		for i := 0; i < n; i++ {
			w[t][i] = base[t]
		}
	}
	for i := 0; i < n; i++ {
		w[9][i] = time9[i]
	}
	for t := 16; t < 80; t++ {
		for i := 0; i < n; i++ {
			w[t][i] = bits.RotateLeft32(w[t-3][i]^w[t-8][i]^w[t-14][i]^w[t-16][i], 1)
		}
	}

	var a, b, c, d, e [maxLanes]uint32
	for i := 0; i < n; i++ {
		a[i], b[i], c[i], d[i], e[i] = alpha.A, alpha.B, alpha.C, alpha.D, alpha.E
	}
	for t := precomputeRounds; t < 80; t++ {
		for i := 0; i < n; i++ {
			var f, k uint32
			switch {
			case t < 20:
				f, k = b[i]&c[i]|^b[i]&d[i], 0x5a827999
			case t < 40:
				f, k = b[i]^c[i]^d[i], 0x6ed9eba1
			case t < 60:
				f, k = b[i]&c[i]|b[i]&d[i]|c[i]&d[i], 0x8f1bbcdc
			default:
				f, k = b[i]^c[i]^d[i], 0xca62c1d6
			}
			tmp := bits.RotateLeft32(a[i], 5) + f + e[i] + k + w[t][i]
			e[i], d[i], c[i], b[i], a[i] = d[i], c[i], bits.RotateLeft32(b[i], 30), a[i], tmp
		}
	}
	for i := 0; i < n; i++ {
		dst[i] = seedFromDigest(a[i]+h0, b[i]+h1)
	}
}
