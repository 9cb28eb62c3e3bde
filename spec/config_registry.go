package spec

import (
	"encoding/json"

	"github.com/zintix-labs/seedlab/errs"
	"gopkg.in/yaml.v3"
)

// GetProfileByYAML 讀取 YAML 設定，初始化並執行基本檢查後回傳。
func GetProfileByYAML(data []byte) (*Profile, error) {
	p := &Profile{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall profile yaml")
	}
	if err := p.init(); err != nil {
		return nil, errs.Wrap(err, "profile initialized err")
	}
	return p, nil
}

// GetProfileByJSON 讀取 JSON 設定，初始化並執行基本檢查後回傳。
func GetProfileByJSON(data []byte) (*Profile, error) {
	p := &Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall profile json")
	}
	if err := p.init(); err != nil {
		return nil, errs.Wrap(err, "profile initialized err")
	}
	return p, nil
}

// InitProfile 對程式內建立的 Profile 執行與讀檔相同的初始化與檢查。
func InitProfile(p *Profile) error {
	return p.init()
}

// GetJobByYAML 讀取工作設定。工作錯誤屬於呼叫端可修正的 Warn。
func GetJobByYAML(data []byte) (*Job, error) {
	j := &Job{}
	if err := yaml.Unmarshal(data, j); err != nil {
		return nil, errs.NewWithExtra(errs.Warn, "failed to unmarshall job yaml", err.Error())
	}
	if err := j.init(); err != nil {
		return nil, errs.Wrap(err, "job initialized err")
	}
	return j, nil
}

// GetJobByJSON 讀取 JSON 工作設定（HTTP API 使用）。
func GetJobByJSON(data []byte) (*Job, error) {
	j := &Job{}
	if err := json.Unmarshal(data, j); err != nil {
		return nil, errs.NewWithExtra(errs.Warn, "can not unmarshall job json", err.Error())
	}
	if err := j.init(); err != nil {
		return nil, errs.Wrap(err, "job initialized err")
	}
	return j, nil
}

// InitJob 對程式內建立的 Job 執行初始化與檢查。
func InitJob(j *Job) error {
	return j.init()
}
