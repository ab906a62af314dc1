package service

import (
	"errors"
)

var (
	ErrMissingTgID     = errors.New("频道缺少 tg 标识")
	ErrSchemaNotLoaded = errors.New("提取模式未加载")
)
