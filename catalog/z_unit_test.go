package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/spec"
)

func profileFS() fstest.MapFS {
	return fstest.MapFS{
		"plat.yaml":  {Data: []byte("name: Plat\nversion: platinum\ntid: 1\nsid: 2\n")},
		"hg.json":    {Data: []byte(`{"name":"hg","version":"heartgold"}`)},
		"notes.txt":  {Data: []byte("ignored")},
		".hidden.ym": {Data: []byte("ignored")},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	c, err := New(profileFS())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Cfg().Files(); len(got) != 2 || got[0] != "hg.json" || got[1] != "plat.yaml" {
		t.Fatalf("files = %v", got)
	}
	if err := c.Register(Entry{Name: " Plat ", Version: spec.Platinum, ConfigName: "plat.yaml"}, Entry{Name: "hg", ConfigName: "hg.json"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if names := c.Names(); len(names) != 2 || names[0] != "hg" || names[1] != "plat" {
		t.Fatalf("names = %v", names)
	}
	p, err := c.ProfileByName("PLAT")
	if err != nil || p.TID != 1 || p.SID != 2 || p.Version != spec.Platinum {
		t.Fatalf("profile = %+v %v", p, err)
	}
	p.TID = 99
	if again, _ := c.ProfileByName("plat"); again.TID != 1 {
		t.Fatalf("ProfileByName must return a fresh instance")
	}
	if _, err := c.ProfileByName("nope"); !errs.IsWarn(err) {
		t.Fatalf("missing profile: %v", err)
	}
	c.Freeze()
	if err := c.Register(Entry{Name: "x", ConfigName: "plat.yaml"}); err == nil || !c.IsFrozen() {
		t.Fatalf("register after freeze should fail")
	}
}

func TestRegisterRejectsWholeBatch(t *testing.T) {
	c, _ := New(profileFS())
	cases := [][]Entry{
		{{Name: "a", ConfigName: "plat.yaml"}, {Name: "a", ConfigName: "hg.json"}},
		{{Name: "a", ConfigName: "plat.yaml"}, {Name: "b", ConfigName: "plat.yaml"}},
		{{Name: "a", ConfigName: "plat.yaml"}, {Name: "b", ConfigName: "missing.yaml"}},
		{{Name: "a", ConfigName: "sub/plat.yaml"}},
		{{Name: "", ConfigName: "plat.yaml"}},
		{{Name: "a", ConfigName: "notes.txt"}},
	}
	for i, ents := range cases {
		if err := c.Register(ents...); err == nil {
			t.Fatalf("case %d should fail", i)
		}
		if len(c.Names()) != 0 {
			t.Fatalf("case %d wrote partial batch: %v", i, c.Names())
		}
	}
	if err := c.Register(Entry{Name: "a", ConfigName: "plat.yaml"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Register(Entry{Name: "b", ConfigName: "plat.yaml"}); err == nil {
		t.Fatalf("config registered twice")
	}
}

func TestMultiFS(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("no fs should fail")
	}
	if _, err := New(profileFS(), fstest.MapFS{"plat.yaml": {Data: []byte("x")}}); err == nil {
		t.Fatalf("duplicate file across fs should fail")
	}
	if _, err := New(fstest.MapFS{"dir/a.yaml": {Data: []byte("x")}}); err == nil {
		t.Fatalf("nested dir should fail")
	}
	if _, err := ParseProfile("a.toml", nil); err == nil {
		t.Fatalf("unsupported format should fail")
	}
}
