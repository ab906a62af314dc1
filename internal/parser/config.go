package parser

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Rule 单条提取规则。Pick 形如 [selector, kind, arg]，
// kind 取值 content|html|attr|attrs|count|texts，缺省为 content；
// selector 为空时在当前元素自身上求值。
type Rule struct {
	Key  string   `json:"key"`
	Pick []string `json:"pick"`
}

// ListRule 重复元素（消息列表）的提取规则
type ListRule struct {
	Selector string `json:"selector"`
	Parse    []Rule `json:"parse"`
}

// Config 声明式页面提取模式。Target 为 URL 模板，{tgChannelId} 在迭代时替换；
// 含 List 的模式按 before 游标翻页，否则单页迭代一次即耗尽。
type Config struct {
	Target string    `json:"target"`
	Parse  []Rule    `json:"parse,omitempty"`
	List   *ListRule `json:"list,omitempty"`
}

// ParseConfig 解析 JSON 提取模式
func ParseConfig(blob string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal([]byte(blob), &cfg); err != nil {
		return nil, errors.Wrap(err, "decode parse config")
	}
	if cfg.Target == "" {
		return nil, errors.New("parse config: target is required")
	}
	if cfg.List != nil && cfg.List.Selector == "" {
		return nil, errors.New("parse config: list selector is required")
	}
	return &cfg, nil
}
