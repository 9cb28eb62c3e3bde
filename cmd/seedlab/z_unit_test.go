package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const wildYAML = `profile: platinum
mechanic: gen4.wild
max_advances: 50
params:
  encounter: grass
  species: 396
  min_level: 2
  max_level: 2
search:
  workers: 2
  space:
    year: 2000
    hours: [0]
    min_delay: 600
    max_delay: 600
filter:
  natures: [Adamant]
`

func writeJob(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write job: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := (&cli{out: &out, errOut: &errOut}).run(args)
	return out.String(), err
}

func TestGenerateText(t *testing.T) {
	job := writeJob(t, strings.Replace(wildYAML, "natures: [Adamant]", "natures: []", 1))
	out, err := runCLI(t, "generate", "-job", job, "-seed", "0x1A2B3C4D")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "seed 0x1A2B3C4D: 51" || !strings.HasPrefix(lines[1], "Adv") {
		t.Fatalf("header: %q %q", lines[0], lines[1])
	}
	if len(lines) != 2+51 || !strings.Contains(lines[2], "5C76C9E4") {
		t.Fatalf("rows: %d %q", len(lines), lines[2])
	}
}

func TestGenerateJSON(t *testing.T) {
	job := writeJob(t, wildYAML)
	out, err := runCLI(t, "generate", "-job", job, "-seed", "0x1A2B3C4D", "-o", "json")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var got struct {
		Seed   string `json:"seed"`
		States []struct {
			Nature uint8 `json:"nature"`
		} `json:"states"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	for _, s := range got.States {
		if s.Nature != 3 {
			t.Fatalf("filter not applied: %+v", got.States)
		}
	}
}

func TestSearchSavesRun(t *testing.T) {
	job := writeJob(t, wildYAML)
	db := filepath.Join(t.TempDir(), "runs.db")
	out, err := runCLI(t, "search", "-job", job, "-db", db, "-o", "yaml")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "status: completed") || !strings.Contains(out, "matches:") {
		t.Fatalf("yaml output: %s", out)
	}
	if fi, err := os.Stat(db); err != nil || fi.Size() == 0 {
		t.Fatalf("db not written: %v", err)
	}
	text, err := runCLI(t, "search", "-job", job, "-n", "1")
	if err != nil || !strings.Contains(text, "matches: ") {
		t.Fatalf("text search: %v %s", err, text)
	}
}

func TestRNGSnapshotResume(t *testing.T) {
	out, err := runCLI(t, "rng", "-engine", "mt", "-seed", "5489", "-n", "2")
	if err != nil {
		t.Fatalf("rng: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.Contains(lines[0], "0xD091BB5C") {
		t.Fatalf("rng out: %q", out)
	}
	snap := strings.TrimPrefix(lines[2], "snapshot ")
	out, err = runCLI(t, "rng", "-engine", "mt", "-snapshot", snap, "-n", "1")
	if err != nil || !strings.Contains(out, "0xE7E466EE") {
		t.Fatalf("resumed: %v %q", err, out)
	}
}

func TestSeedTime(t *testing.T) {
	out, err := runCLI(t, "seedtime", "-seed", "0xAB0A0258", "-year", "2000", "-n", "0")
	if err != nil {
		t.Fatalf("seedtime: %v", err)
	}
	if !strings.Contains(out, "delay 600") || !strings.Contains(out, " 10:") {
		t.Fatalf("seedtime out: %s", out)
	}
	out, err = runCLI(t, "seedtime", "-profile", "black", "-time", "2000-01-01T00:00:00")
	if err != nil || !strings.Contains(out, "timer0 0x") {
		t.Fatalf("gen5 seedtime: %v %s", err, out)
	}
}

func TestBadInvocations(t *testing.T) {
	if _, err := runCLI(t); err == nil {
		t.Fatalf("no command should fail")
	}
	if _, err := runCLI(t, "fly"); err == nil {
		t.Fatalf("unknown command should fail")
	}
	if _, err := runCLI(t, "generate", "-seed", "1"); err == nil {
		t.Fatalf("missing job should fail")
	}
	job := writeJob(t, wildYAML)
	if _, err := runCLI(t, "generate", "-job", job, "-seed", "1", "-o", "xml"); err == nil {
		t.Fatalf("bad format should fail")
	}
}
