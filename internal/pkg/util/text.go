package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>?`)

var spaceRegex = regexp.MustCompile(`\s`)

// StripTags 去除文本中的 HTML 标签
func StripTags(text string) string {
	return htmlTagRegex.ReplaceAllString(text, "")
}

// meaningful 内容少于 10 个非空白字符的片段不参与统计
func meaningful(text string) (string, bool) {
	str := StripTags(text)
	if len(spaceRegex.ReplaceAllString(str, "")) <= 10 {
		return "", false
	}
	return str, true
}

// WordsCount 统计词数：空白分隔的词段各计一词，CJK 文字逐字计数
func WordsCount(text string) int {
	str, ok := meaningful(text)
	if !ok {
		return 0
	}

	count := 0
	for _, field := range strings.Fields(str) {
		han := 0
		for _, r := range field {
			if unicode.Is(unicode.Han, r) {
				han++
			}
		}
		if han > 0 {
			count += han
		} else {
			count++
		}
	}
	return count
}

// DetectLang 识别文本语言，返回 ISO 639-1 代码，无法识别时返回空串
func DetectLang(text string) string {
	str, ok := meaningful(text)
	if !ok {
		return ""
	}

	info := whatlanggo.Detect(str)
	if !info.IsReliable() {
		return ""
	}
	return whatlanggo.LangToStringShort(info.Lang)
}
