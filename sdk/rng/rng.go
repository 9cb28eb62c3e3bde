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

// Package rng 提供遊戲端使用的各種決定性亂數引擎。
//
// 所有引擎皆為單純的 struct，複製值即等於 clone；同一個引擎值不得跨 goroutine 共用。
// 有界取值（bounded draw）一律使用各遊戲原本的算法，而非統計上均勻的算法，
// 因此呼叫端必須選用與該機制相同的方法。
package rng

import (
	"encoding/binary"

	"github.com/zintix-labs/seedlab/errs"
)

// Source32 為以 32-bit 字為輸出單位的引擎。
type Source32 interface {
	NextUint32() uint32
	Advance(n uint32)
}

// Source64 為以 64-bit 為輸出單位的引擎。
type Source64 interface {
	NextUint64() uint64
	Advance(n uint32)
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態（big-endian）。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原內部狀態。
	Restore([]byte) error
}

// AppendUint32 以 big-endian 附加 v。
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// AppendUint64 以 big-endian 附加 v。
func AppendUint64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

func errSnapshotSize(kind string, want, got int) error {
	return errs.Warnf("%s snapshot: expected %d bytes, got %d", kind, want, got)
}
