package util

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var counterRegex = regexp.MustCompile(`(\d*(?:\.\d+)?)([KM])?`)

// ToFullNumber 将带单位后缀的计数文本转为整数，如 "1.2K" -> 1200、"3M" -> 3000000。
// 千位分隔空格（含窄空格）先行剔除，无法解析时返回 0。
func ToFullNumber(str string) int64 {
	str = strings.NewReplacer(" ", "", " ", "", " ", "").Replace(str)

	m := counterRegex.FindStringSubmatch(str)
	if m == nil || m[1] == "" {
		return 0
	}

	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	switch m[2] {
	case "K":
		num *= 1000
	case "M":
		num *= 1000000
	}
	return int64(num)
}

// TimeToSeconds 将 "mm:ss" 时长文本转为秒数，格式异常时返回 0
func TimeToSeconds(t string) int {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0
	}
	min, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	sec, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0
	}
	return min*60 + sec
}

// IsValidHTTPURL 校验链接是否为可持久化的 http(s) 地址
func IsValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// HostOf 提取链接主机名并去除 www. 前缀
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
