package spec

import (
	"bytes"

	"github.com/zintix-labs/seedlab/errs"
	"gopkg.in/yaml.v3"
)

// DecodeParams 將鬆散的 map 參數嚴格解碼為機制自定義的型別。
//
// 先轉回 YAML bytes，再以 KnownFields 解碼：多寫或拼錯欄位都會回報錯誤。
func DecodeParams[T any](params map[string]any, out *T) error {
	if len(params) == 0 {
		return nil
	}
	bs, err := yaml.Marshal(params)
	if err != nil {
		return errs.Wrap(err, "spec.params_decoder : marshal failed")
	}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err = dec.Decode(out); err != nil {
		return errs.NewWithExtra(errs.Warn, "spec.params_decoder : decode failed", err.Error())
	}
	return nil
}
