package util

import (
	"regexp"
	"strconv"
	"strings"

	"Tgspace/internal/pkg/consts"
)

var tgURLRegex = regexp.MustCompile(`(?i)^https?://t\.me/(?:s/)?([A-Za-z0-9_]+)(?:/(\d+))?`)

var numericRegex = regexp.MustCompile(`^\d+$`)

// ParseTgURL 从 t.me 链接中提取频道标识与消息 id。
// 纯数字段视为消息 id（无频道标识），标识短于 5 个字符视为无法解析。
func ParseTgURL(raw string) (handle string, postID int64) {
	m := tgURLRegex.FindStringSubmatch(raw)
	if m == nil {
		return "", 0
	}

	if numericRegex.MatchString(m[1]) {
		postID, _ = strconv.ParseInt(m[1], 10, 64)
		return "", postID
	}

	if len(m[1]) < 5 {
		return "", 0
	}

	if m[2] != "" {
		postID, _ = strconv.ParseInt(m[2], 10, 64)
	}
	return m[1], postID
}

// IsBotHandle 判断频道标识是否为机器人账号
func IsBotHandle(handle string) bool {
	return strings.HasSuffix(handle, consts.BotHandleSuffix)
}

// IsInviteLink 判断链接是否为私有邀请链接
func IsInviteLink(raw string) bool {
	return strings.Contains(raw, consts.InviteLinkMarker)
}

// IsTgLink 判断链接是否指向 t.me
func IsTgLink(raw string) bool {
	return strings.HasPrefix(raw, "https://t.me/") || strings.HasPrefix(raw, "http://t.me/")
}
