package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/seedlab/errs"
	"github.com/zintix-labs/seedlab/spec"
)

// Entry 為 catalog 中的一筆 profile：名稱、版本與對應的設定檔名。
type Entry struct {
	Name       string
	Version    spec.Version
	ConfigName string
}

// Summary 為 profile 的公開摘要（API 與命令列列表使用）。
type Summary struct {
	Name       string       `json:"name"       yaml:"name"`
	Version    spec.Version `json:"version"    yaml:"version"`
	Generation int          `json:"generation" yaml:"generation"`
	TID        uint16       `json:"tid"        yaml:"tid"`
	SID        uint16       `json:"sid"        yaml:"sid"`
}

// Catalog 管理 profile 名稱到設定檔的對應。Freeze 之後只讀，可併發使用。
type Catalog struct {
	byName map[string]Entry
	byFile map[string]string // 設定檔名 -> profile 名稱
	names  []string
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	src, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byName: map[string]Entry{},
		byFile: map[string]string{},
		config: src,
	}, nil
}

func normName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register 一次寫入多筆 Entry；任何一筆不合法時全部不寫入。
func (c *Catalog) Register(ents ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	batch := make([]Entry, 0, len(ents))
	names := map[string]bool{}
	files := map[string]bool{}
	for _, e := range ents {
		e.Name = normName(e.Name)
		if err := c.check(e); err != nil {
			return err
		}
		if names[e.Name] {
			return errs.NewFatal(fmt.Sprintf("duplicate profile name: %s", e.Name))
		}
		if files[e.ConfigName] {
			return errs.NewFatal(fmt.Sprintf("duplicate config name: %s", e.ConfigName))
		}
		names[e.Name], files[e.ConfigName] = true, true
		batch = append(batch, e)
	}
	for _, e := range batch {
		c.byName[e.Name] = e
		c.byFile[e.ConfigName] = e.Name
		c.names = append(c.names, e.Name)
	}
	sort.Strings(c.names)
	return nil
}

// check 檢查單筆 Entry 與已註冊內容是否衝突。
func (c *Catalog) check(e Entry) error {
	if e.Name == "" {
		return errs.NewFatal("profile name required")
	}
	if err := validFileName(e.ConfigName); err != nil {
		return err
	}
	if _, ok := c.config.index[e.ConfigName]; !ok {
		return errs.NewFatal(fmt.Sprintf("config file not found: %s", e.ConfigName))
	}
	if _, ok := c.byName[e.Name]; ok {
		return errs.NewFatal(fmt.Sprintf("duplicate profile name: %s", e.Name))
	}
	if prev, ok := c.byFile[e.ConfigName]; ok {
		return errs.NewFatal(fmt.Sprintf("config %s already registered as %s", e.ConfigName, prev))
	}
	return nil
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	e, ok := c.byName[normName(name)]
	return e, ok
}

func (c *Catalog) Names() []string {
	if len(c.names) == 0 {
		return nil
	}
	return append([]string(nil), c.names...)
}

func (c *Catalog) Cfg() *multiFS {
	return c.config
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

func validFileName(file string) error {
	var why string
	switch {
	case file == "":
		return errs.NewFatal("empty config filename")
	case strings.ContainsAny(file, `/\:`):
		why = "must be a basename"
	case strings.HasPrefix(file, "."):
		why = "cannot start with '.'"
	case !isConfigFile(file):
		why = "must end with .yaml, .yml, or .json"
	default:
		return nil
	}
	return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (%s)", file, why))
}

func isConfigFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// ParseProfile 依副檔名解析 profile 設定。
func ParseProfile(filename string, raw []byte) (*spec.Profile, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return spec.GetProfileByYAML(raw)
	case ".json":
		return spec.GetProfileByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported config format: %q", filename))
	}
}

// ProfileByName
//
// 會讀取 fs.FS 中的 YAML/JSON profile、初始化並執行基本檢查後回傳。每次呼叫都回傳新的實例。
func (c *Catalog) ProfileByName(name string) (*spec.Profile, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.NewWarn(fmt.Sprintf("profile %q does not exist in catalog", name))
	}
	src, ok := c.config.GetFS(e.ConfigName)
	if !ok {
		return nil, errs.NewWarn("file name does not exist in catalog")
	}
	raw, err := fs.ReadFile(src, e.ConfigName)
	if err != nil {
		return nil, errs.Wrap(err, "catalog parse file error")
	}
	return ParseProfile(e.ConfigName, raw)
}

// multiFS 合併多個扁平的設定檔來源；同名檔案出現在兩個來源視為錯誤。
type multiFS struct {
	src   []fs.FS
	index map[string]int // 檔名 -> src 位置
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	m := &multiFS{src: src, index: map[string]int{}}
	for i, s := range src {
		if s == nil {
			return nil, errs.NewFatal(fmt.Sprintf("fs[%d] is nil", i))
		}
		ents, err := fs.ReadDir(s, ".")
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("read fs[%d] failed", i))
		}
		for _, d := range ents {
			name := d.Name()
			if d.IsDir() {
				return nil, errs.NewFatal(fmt.Sprintf("config FS must be flat (no subdirectories): %q", name))
			}
			if strings.HasPrefix(name, ".") || !isConfigFile(name) {
				continue
			}
			if prev, dup := m.index[name]; dup {
				return nil, errs.NewFatal(fmt.Sprintf("duplicate config %q in fs[%d] and fs[%d]", name, prev, i))
			}
			m.index[name] = i
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return m.src[i], true
}

// Files 依檔名排序回傳所有已索引的設定檔。
func (m *multiFS) Files() []string {
	out := make([]string, 0, len(m.index))
	for name := range m.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
