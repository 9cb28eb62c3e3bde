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

// ops 為開發用的任務執行器：go run ./scripts <task>
package main

import (
	"fmt"
	"os"
	"sort"
)

type task struct {
	desc string
	run  func(args []string) error
}

var tasks = map[string]task{
	"test":        {"go test ./... (只顯示 ok / FAIL)", runTest},
	"test-race":   {"go test -race ./...", runTestRace},
	"test-detail": {"go test -v ./...，略過沒有測試的套件", runTestDetail},
	"bench":       {"引擎與 SHA-1 基準測試", runBench},
	"ivtable":     {"建立 IV 表：ivtable [out]，預設 build/ivtable.bin.zst", runIVTable},
	"svr":         {"以 demo profiles 啟動 HTTP server", runSvr},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		PrintYellow(fmt.Sprintf("unknown task: %s", os.Args[1]))
		usage()
		os.Exit(1)
	}
	if err := t.run(os.Args[2:]); err != nil {
		PrintRed(err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: go run ./scripts <task>")
	names := make([]string, 0, len(tasks))
	for n := range tasks {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %-12s %s\n", n, tasks[n].desc)
	}
}
