package service

import (
	"context"
	log "log/slog"

	"Tgspace/internal/pkg/util"
	"Tgspace/internal/repository"
)

type RelationService interface {
	// ResolveChannelRef 从 t.me 引用解析目标频道，必要时创建占位频道。
	// 无法解析或引用被排除（机器人、邀请链接）时返回 (nil, nil)，不视为错误。
	ResolveChannelRef(ctx context.Context, rawURL string) (*uint64, error)
}

type relationServiceImpl struct {
	channelRepo repository.ChannelRepo
}

func NewRelationService(channelRepo repository.ChannelRepo) RelationService {
	return &relationServiceImpl{channelRepo: channelRepo}
}

func (s *relationServiceImpl) ResolveChannelRef(ctx context.Context, rawURL string) (*uint64, error) {
	handle, _ := util.ParseTgURL(rawURL)
	if handle == "" {
		return nil, nil
	}

	channel, err := s.channelRepo.GetChannelByTgID(ctx, handle)
	if err != nil {
		return nil, err
	}
	if channel != nil {
		return &channel.ID, nil
	}

	if util.IsBotHandle(handle) || util.IsInviteLink(rawURL) {
		return nil, nil
	}

	stub, err := s.channelRepo.CreateStub(ctx, handle, "@"+handle)
	if err != nil {
		return nil, err
	}
	if stub == nil {
		return nil, nil
	}

	log.InfoContext(ctx, "stub channel created", "tg_id", handle, "channel_id", stub.ID)
	return &stub.ID, nil
}
