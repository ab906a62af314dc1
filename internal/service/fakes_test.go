package service

import (
	"context"
	"sync"
	"time"

	"Tgspace/internal/model"
	"Tgspace/internal/parser"
)

// fakeChannelRepo 内存频道仓储，按插入顺序模拟 updated_at 轮换
type fakeChannelRepo struct {
	mu       sync.Mutex
	channels []*model.Channel
	nextID   uint64
	touched  [][]uint64
	updates  []string // UpdateInfo 收到的 name
}

func newFakeChannelRepo(channels ...*model.Channel) *fakeChannelRepo {
	repo := &fakeChannelRepo{nextID: 1}
	for _, c := range channels {
		if c.ID == 0 {
			c.ID = repo.nextID
		}
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
		repo.channels = append(repo.channels, c)
	}
	return repo
}

func (r *fakeChannelRepo) GetChannel(_ context.Context, id uint64) (*model.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.channels {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeChannelRepo) GetChannelByTgID(_ context.Context, tgID string) (*model.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.channels {
		if c.TgID == tgID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeChannelRepo) CreateStub(_ context.Context, tgID string, name string) (*model.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.channels {
		if c.TgID == tgID {
			return c, nil
		}
	}
	c := &model.Channel{ID: r.nextID, TgID: tgID, Name: name}
	r.nextID++
	r.channels = append(r.channels, c)
	return c, nil
}

func (r *fakeChannelRepo) SelectForSync(_ context.Context, limit int) ([]*model.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Channel, 0, limit)
	for _, c := range r.channels {
		if len(out) == limit {
			break
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeChannelRepo) TouchChannels(_ context.Context, ids []uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched = append(r.touched, ids)
	return nil
}

func (r *fakeChannelRepo) UpdateInfo(_ context.Context, id uint64, name string, description string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, name)
	for _, c := range r.channels {
		if c.ID == id {
			c.Name = name
			c.Description = description
			c.Verified = verified
		}
	}
	return nil
}

// fakePostRepo 内存帖子仓储
type fakePostRepo struct {
	mu     sync.Mutex
	posts  []*model.Post
	nextID uint64
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	repo := &fakePostRepo{nextID: 1}
	for _, p := range posts {
		if p.ID == 0 {
			p.ID = repo.nextID
		}
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
		repo.posts = append(repo.posts, p)
	}
	return repo
}

func (r *fakePostRepo) FindByTgMessageIDs(_ context.Context, channelID uint64, tgMessageIDs []int64) (map[int64]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[int64]struct{}, len(tgMessageIDs))
	for _, id := range tgMessageIDs {
		want[id] = struct{}{}
	}
	out := make(map[int64]uint64)
	for _, p := range r.posts {
		if p.ChannelID != channelID {
			continue
		}
		if _, ok := want[p.TgMessageID]; ok {
			out[p.TgMessageID] = p.ID
		}
	}
	return out, nil
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	r.nextID++
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakePostRepo) GetMaxPublishedAt(_ context.Context, channelID *uint64) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var max time.Time
	for _, p := range r.posts {
		if channelID != nil && p.ChannelID != *channelID {
			continue
		}
		if p.PublishedAt.After(max) {
			max = p.PublishedAt
		}
	}
	return max, nil
}

// fakeMetricRepo 内存指标仓储
type fakeMetricRepo struct {
	mu      sync.Mutex
	metrics []*model.Metric
	nextID  uint64
	updated int // UpdateValue 调用次数
}

func (r *fakeMetricRepo) GetInWindow(_ context.Context, entityType string, entityID uint64, metricType string, start, end time.Time) (*model.Metric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.metrics {
		if m.EntityType == entityType && m.EntityID == entityID && m.Type == metricType &&
			!m.CreatedAt.Before(start) && !m.CreatedAt.After(end) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMetricRepo) GetLatest(_ context.Context, entityType string, entityID uint64, metricType string) (*model.Metric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.metrics) - 1; i >= 0; i-- {
		m := r.metrics[i]
		if m.EntityType == entityType && m.EntityID == entityID && m.Type == metricType {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMetricRepo) CreateMetric(_ context.Context, metric *model.Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	metric.ID = r.nextID
	if metric.CreatedAt.IsZero() {
		metric.CreatedAt = time.Now()
	}
	r.metrics = append(r.metrics, metric)
	return nil
}

func (r *fakeMetricRepo) UpdateValue(_ context.Context, id uint64, value int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated++
	for _, m := range r.metrics {
		if m.ID == id {
			m.Value = value
		}
	}
	return nil
}

func (r *fakeMetricRepo) count(entityType string, entityID uint64, metricType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.metrics {
		if m.EntityType == entityType && m.EntityID == entityID && m.Type == metricType {
			n++
		}
	}
	return n
}

// fakeLinkRepo 内存外链仓储
type fakeLinkRepo struct {
	mu    sync.Mutex
	links []*model.ChannelLink
}

func (r *fakeLinkRepo) FindByURLs(_ context.Context, channelID uint64, urls []string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		want[u] = struct{}{}
	}
	out := make(map[string]struct{})
	for _, l := range r.links {
		if l.ChannelID != channelID {
			continue
		}
		if _, ok := want[l.URL]; ok {
			out[l.URL] = struct{}{}
		}
	}
	return out, nil
}

func (r *fakeLinkRepo) UpsertLink(_ context.Context, link *model.ChannelLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.links {
		if l.ChannelID == link.ChannelID && l.URL == link.URL {
			return nil
		}
	}
	r.links = append(r.links, link)
	return nil
}

// fakeSource 以固定页面序列实现 parser.Source
type fakeSource struct {
	pages []*parser.Page
	err   error
}

func (s *fakeSource) Iterate(_ *parser.Config, _ parser.Context) parser.PageIterator {
	return &fakeIterator{pages: s.pages, err: s.err}
}

type fakeIterator struct {
	pages []*parser.Page
	err   error
	pos   int
}

func (it *fakeIterator) Next(_ context.Context) (*parser.Page, error) {
	if it.pos == len(it.pages) {
		if it.err != nil {
			err := it.err
			it.err = nil
			return nil, err
		}
		return nil, nil
	}
	page := it.pages[it.pos]
	it.pos++
	return page, nil
}
