package stats

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// SearchReportRender 定義輸出行為
type SearchReportRender interface {
	Write(w io.Writer, r *SearchReport) error
}

type JsonSearchReportRender struct{}

func (*JsonSearchReportRender) Write(w io.Writer, r *SearchReport) error {
	return json.NewEncoder(w).Encode(r)
}

// YAMLSearchReportRender 輸出 YAML，各門檻的命中數等一維陣列寫成 [a, b, c]。
type YAMLSearchReportRender struct{}

func (*YAMLSearchReportRender) Write(w io.Writer, r *SearchReport) error {
	return FlowLeafSequences(w, r)
}

type TableSearchReportRender struct{}

func (*TableSearchReportRender) Write(w io.Writer, r *SearchReport) error {
	keys, msg := r.fmtBasic()
	_, err := io.WriteString(w, fmtTable("Search Report", keys, msg))
	return err
}

var renders = map[string]struct {
	render      SearchReportRender
	contentType string
}{
	"json":  {&JsonSearchReportRender{}, "application/json"},
	"yaml":  {&YAMLSearchReportRender{}, "application/yaml"},
	"table": {&TableSearchReportRender{}, "text/plain; charset=utf-8"},
}

// RenderFor 依格式名稱（json|yaml|table，不分大小寫）回傳 render 與其 Content-Type。
func RenderFor(format string) (SearchReportRender, string, bool) {
	r, ok := renders[strings.ToLower(format)]
	return r.render, r.contentType, ok
}

// FlowLeafSequences 以 YAML 輸出 v；不含子序列或子映射的序列改用 flow style。
func FlowLeafSequences(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	flowLeaves(&node)
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func flowLeaves(n *yaml.Node) {
	for _, c := range n.Content {
		flowLeaves(c)
	}
	if n.Kind != yaml.SequenceNode {
		return
	}
	nested := slices.ContainsFunc(n.Content, func(c *yaml.Node) bool {
		return c.Kind == yaml.SequenceNode || c.Kind == yaml.MappingNode
	})
	if !nested {
		n.Style = yaml.FlowStyle
	}
}
