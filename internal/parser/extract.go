package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// evalPick 在 root 范围内求值一条 pick 规则，统一返回字符串切片：
// 单值类规则产出 0 或 1 个元素，多值类规则逐匹配产出。
func evalPick(root *goquery.Selection, pick []string) []string {
	if len(pick) == 0 {
		return nil
	}

	// 空选择器指向 root 自身，用于取列表元素上的属性
	found := root
	if pick[0] != "" {
		found = root.Find(pick[0])
	}

	kind := "content"
	if len(pick) > 1 {
		kind = pick[1]
	}

	switch kind {
	case "content":
		if found.Length() == 0 {
			return nil
		}
		return []string{strings.TrimSpace(found.First().Text())}
	case "html":
		if found.Length() == 0 {
			return nil
		}
		h, err := found.First().Html()
		if err != nil {
			return nil
		}
		return []string{strings.TrimSpace(h)}
	case "attr":
		if len(pick) < 3 {
			return nil
		}
		if v, ok := found.First().Attr(pick[2]); ok {
			return []string{v}
		}
		return nil
	case "attrs":
		if len(pick) < 3 {
			return nil
		}
		var out []string
		found.Each(func(_ int, sel *goquery.Selection) {
			if v, ok := sel.Attr(pick[2]); ok {
				out = append(out, v)
			}
		})
		return out
	case "texts":
		var out []string
		found.Each(func(_ int, sel *goquery.Selection) {
			out = append(out, strings.TrimSpace(sel.Text()))
		})
		return out
	case "count":
		return []string{strconv.Itoa(found.Length())}
	}
	return nil
}
