package service

import (
	"time"

	"Tgspace/internal/pkg/util"
)

// feedWindow 抓取运行的时间下界：最近发布时刻取本地零点后回退 lookbackDays，
// 容忍上次同步前后漏采的条目。无存量数据时以当前时刻为基准。
type feedWindow struct {
	until time.Time
}

func newFeedWindow(lastPublished time.Time, lookbackDays int) feedWindow {
	if lastPublished.IsZero() {
		lastPublished = time.Now()
	}
	return feedWindow{
		until: util.GetMidnight(lastPublished).AddDate(0, 0, -lookbackDays),
	}
}

func (w feedWindow) Until() time.Time {
	return w.until
}

// Includes 判断条目是否落在窗口内；窗口外的条目跳过而非终止整轮
func (w feedWindow) Includes(publishedAt time.Time) bool {
	return !publishedAt.Before(w.until)
}

// runClock 以页面上报的序列起始时刻衡量运行时长；超限是正常的提前停止信号
type runClock struct {
	limit time.Duration
}

func (c runClock) exceeded(startTime time.Time) (time.Duration, bool) {
	elapsed := time.Since(startTime)
	return elapsed, elapsed > c.limit
}
