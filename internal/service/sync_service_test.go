package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Tgspace/internal/model"
)

type fakeInfoSyncService struct {
	mu       sync.Mutex
	runTime  time.Duration
	err      error
	channels []uint64
}

func (s *fakeInfoSyncService) SyncChannelInfo(_ context.Context, channel *model.Channel) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = append(s.channels, channel.ID)
	return s.runTime, s.err
}

type fakeFeedSyncService struct {
	mu       sync.Mutex
	runTime  time.Duration
	err      error
	channels []uint64
}

func (s *fakeFeedSyncService) SyncChannelFeed(_ context.Context, channel *model.Channel) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = append(s.channels, channel.ID)
	return s.runTime, s.err
}

func TestRunBatch(t *testing.T) {
	repo := newFakeChannelRepo(
		&model.Channel{ID: 1, TgID: "alpha"},
		&model.Channel{ID: 2, TgID: "helper_bot"},
		&model.Channel{ID: 3, TgID: "gamma"},
	)
	infoSvc := &fakeInfoSyncService{runTime: 10 * time.Millisecond}
	feedSvc := &fakeFeedSyncService{runTime: 20 * time.Millisecond}
	svc := NewSyncService(repo, infoSvc, feedSvc, testSyncConfig())

	report, err := svc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}

	if report.Selected != 3 {
		t.Errorf("Selected = %d, want 3", report.Selected)
	}
	if report.Processed != 2 {
		t.Errorf("Processed = %d, want 2", report.Processed)
	}
	if report.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (bot handle)", report.Skipped)
	}
	if report.Deferred != 0 {
		t.Errorf("Deferred = %d, want 0", report.Deferred)
	}
	if want := 2 * (10 + 20) * time.Millisecond; report.Elapsed != want {
		t.Errorf("Elapsed = %v, want %v", report.Elapsed, want)
	}

	// 机器人频道既不同步 info 也不同步 feed
	for _, id := range feedSvc.channels {
		if id == 2 {
			t.Error("bot channel was synced")
		}
	}

	// 选中的频道全部触达，包括被跳过的
	if len(repo.touched) != 1 || len(repo.touched[0]) != 3 {
		t.Errorf("touched = %v, want all 3 selected ids", repo.touched)
	}
}

func TestRunBatchRespectsBatchSize(t *testing.T) {
	repo := newFakeChannelRepo(
		&model.Channel{ID: 1, TgID: "alpha"},
		&model.Channel{ID: 2, TgID: "bravo"},
		&model.Channel{ID: 3, TgID: "gamma"},
	)
	cfg := testSyncConfig()
	cfg.BatchSize = 2
	svc := NewSyncService(repo, &fakeInfoSyncService{}, &fakeFeedSyncService{}, cfg)

	report, err := svc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if report.Selected != 2 {
		t.Errorf("Selected = %d, want 2", report.Selected)
	}
}

func TestRunBatchDefersOnOverallBudget(t *testing.T) {
	repo := newFakeChannelRepo(
		&model.Channel{ID: 1, TgID: "alpha"},
		&model.Channel{ID: 2, TgID: "bravo"},
		&model.Channel{ID: 3, TgID: "gamma"},
	)
	cfg := testSyncConfig()
	cfg.OverallRunTimeLimitMs = 50
	// 单频道耗时即超总预算
	feedSvc := &fakeFeedSyncService{runTime: 100 * time.Millisecond}
	svc := NewSyncService(repo, &fakeInfoSyncService{}, feedSvc, cfg)

	report, err := svc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if report.Processed != 1 {
		t.Errorf("Processed = %d, want 1", report.Processed)
	}
	if report.Deferred != 2 {
		t.Errorf("Deferred = %d, want 2", report.Deferred)
	}
	// 推迟的频道同样已触达，下一轮轮换到队尾
	if len(repo.touched) != 1 || len(repo.touched[0]) != 3 {
		t.Errorf("touched = %v, want all 3 selected ids", repo.touched)
	}
}

func TestRunBatchChannelFailureDoesNotAbort(t *testing.T) {
	repo := newFakeChannelRepo(
		&model.Channel{ID: 1, TgID: "alpha"},
		&model.Channel{ID: 2, TgID: "bravo"},
	)
	feedSvc := &fakeFeedSyncService{err: errors.New("fetch failed")}
	svc := NewSyncService(repo, &fakeInfoSyncService{}, feedSvc, testSyncConfig())

	report, err := svc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if report.Processed != 2 {
		t.Errorf("Processed = %d, want 2 (failures logged, not fatal)", report.Processed)
	}
	if len(feedSvc.channels) != 2 {
		t.Errorf("feed synced channels = %v, want both", feedSvc.channels)
	}
}

func TestRunBatchEmpty(t *testing.T) {
	svc := NewSyncService(newFakeChannelRepo(), &fakeInfoSyncService{}, &fakeFeedSyncService{}, testSyncConfig())

	report, err := svc.RunBatch(context.Background())
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if report.Selected != 0 || report.Processed != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}
