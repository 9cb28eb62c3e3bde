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

// seedlab 為命令列工具：重播單一 seed、平行搜尋、輸出原始亂數與 Gen 4 seed 時間換算。
//
//	seedlab generate -job job.yaml -seed 0x1A2B3C4D
//	seedlab search   -job job.yaml -progress -db runs.db
//	seedlab rng      -engine mt -seed 5489 -n 10
//	seedlab seedtime -seed 0x1A2B3C4D -year 2009
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
)

type command struct {
	desc string
	run  func(c *cli, args []string) error
}

var commands = map[string]command{
	"generate": {"replay one seed with a job file", (*cli).generate},
	"search":   {"search the job's seed space in parallel", (*cli).search},
	"rng":      {"print raw engine outputs and the final snapshot", (*cli).rng},
	"seedtime": {"gen4 seed to date/time/delay, or gen5 date/time to seed", (*cli).seedTime},
}

type cli struct {
	out    io.Writer
	errOut io.Writer
}

func main() {
	c := &cli{out: os.Stdout, errOut: os.Stderr}
	if err := c.run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) run(args []string) error {
	if len(args) == 0 {
		c.usage()
		return fmt.Errorf("missing command")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		c.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd.run(c, args[1:])
}

func (c *cli) usage() {
	fmt.Fprintln(c.errOut, "Usage: seedlab <command> [flags]")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(c.errOut, "  %-9s %s\n", n, commands[n].desc)
	}
}
