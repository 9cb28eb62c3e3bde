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

package ivtable

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/seedlab/errs"
)

// zstdExt 結尾的檔案以 zstd 串流包裝。
const zstdExt = ".zst"

func (t *Table) all() [][]uint32 {
	out := make([][]uint32, 0, EntralinkBuckets+NormalBuckets+RoamerBuckets)
	out = append(out, t.Entralink[:]...)
	out = append(out, t.Normal[:]...)
	return append(out, t.Roamer[:]...)
}

// Write 以 little-endian 寫出：先寫 24 個 u16 組大小，再依同順序寫出各組的 u32 seed。
func (t *Table) Write(w io.Writer) error {
	buckets := t.all()
	sizes := make([]uint16, len(buckets))
	for i, b := range buckets {
		if len(b) > math.MaxUint16 {
			return errs.Warnf("ivtable bucket %d has %d seeds, exceeds u16", i, len(b))
		}
		sizes[i] = uint16(len(b))
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, sizes); err != nil {
		return errs.Wrap(err, "write ivtable sizes")
	}
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		if err := binary.Write(bw, binary.LittleEndian, b); err != nil {
			return errs.Wrap(err, "write ivtable bucket")
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.Wrap(err, "flush ivtable")
	}
	return nil
}

// Read 讀取 Write 寫出的格式。
func Read(r io.Reader) (*Table, error) {
	t := &Table{}
	buckets := t.all()
	sizes := make([]uint16, len(buckets))
	br := bufio.NewReader(r)
	if err := binary.Read(br, binary.LittleEndian, sizes); err != nil {
		return nil, errs.NewWithExtra(errs.Warn, "read ivtable sizes", err.Error())
	}
	for i := range buckets {
		b := make([]uint32, sizes[i])
		if len(b) == 0 {
			buckets[i] = b
			continue
		}
		if err := binary.Read(br, binary.LittleEndian, b); err != nil {
			return nil, errs.NewWithExtra(errs.Warn, "read ivtable bucket", err.Error())
		}
		buckets[i] = b
	}
	copy(t.Entralink[:], buckets[:EntralinkBuckets])
	copy(t.Normal[:], buckets[EntralinkBuckets:EntralinkBuckets+NormalBuckets])
	copy(t.Roamer[:], buckets[EntralinkBuckets+NormalBuckets:])
	return t, nil
}

// WriteFile 寫出表格檔；副檔名為 .zst 時以 zstd 壓縮。
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create ivtable file")
	}
	defer f.Close()
	if !strings.HasSuffix(path, zstdExt) {
		if err := t.Write(f); err != nil {
			return err
		}
		return f.Close()
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		return errs.Wrap(err, "open zstd writer")
	}
	if err := t.Write(zw); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return errs.Wrap(err, "close zstd writer")
	}
	return f.Close()
}

// ReadFile 讀取表格檔；副檔名為 .zst 時先解壓。
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err, "open ivtable file")
	}
	defer f.Close()
	if !strings.HasSuffix(path, zstdExt) {
		return Read(f)
	}
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, errs.Wrap(err, "open zstd reader")
	}
	defer zr.Close()
	return Read(zr)
}
