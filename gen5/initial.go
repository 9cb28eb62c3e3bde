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

package gen5

// AdvanceCounter 回傳遊戲啟動到可操作之間消耗的初始步數。
//
// 實際步數取決於遊戲內的機率表，屬於外部資料；搜尋與產生時會加在 initial_advances 之前。
type AdvanceCounter interface {
	InitialAdvances(seed uint64) uint32
}

// FixedAdvances 為固定步數的 AdvanceCounter。
type FixedAdvances uint32

func (f FixedAdvances) InitialAdvances(uint64) uint32 { return uint32(f) }

// AdvanceFunc 讓一般函式滿足 AdvanceCounter。
type AdvanceFunc func(seed uint64) uint32

func (f AdvanceFunc) InitialAdvances(seed uint64) uint32 { return f(seed) }
