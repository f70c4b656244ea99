package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nimah79/telegram-observer-bot/internal/domain/model"
)

// Gateway is the platform surface the dispatcher drives. Each call may fail
// independently; failures are expected under normal operation (messages
// already deleted, members already gone) and are never surfaced to the chat.
type Gateway interface {
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int, parseMode string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	KickMember(ctx context.Context, chatID int64, userID int64) error
	ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error
	ExportInviteLink(ctx context.Context, chatID int64) (string, error)
}

// LinkCache memoizes one invite link per chat for a bounded window. The
// implementation guarantees at most one underlying compute per key per TTL.
// Implementations may fix the window at construction and reject a call whose
// ttl differs from it; the dispatcher always passes its configured TTL.
type LinkCache interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(context.Context) (string, error)) (string, error)
}

type Service struct {
	gateway Gateway
	cache   LinkCache
	linkTTL time.Duration
	logger  *slog.Logger
}

func NewService(gateway Gateway, cache LinkCache, linkTTL time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if linkTTL <= 0 {
		linkTTL = 180 * time.Second
	}
	return &Service{
		gateway: gateway,
		cache:   cache,
		linkTTL: linkTTL,
		logger:  logger,
	}
}

// Execute runs the actions strictly in order. A failed action is logged and
// dropped; it never blocks the actions after it. No retries.
func (s *Service) Execute(ctx context.Context, actions []model.Action) {
	for _, action := range actions {
		if err := s.executeOne(ctx, action); err != nil {
			s.logger.Warn("action failed", "error", err, "action", actionName(action))
		}
	}
}

func (s *Service) executeOne(ctx context.Context, action model.Action) error {
	switch a := action.(type) {
	case model.SendMessage:
		return s.gateway.SendMessage(ctx, a.ChatID, a.Text, a.ReplyTo, a.ParseMode)
	case model.DeleteMessage:
		return s.gateway.DeleteMessage(ctx, a.ChatID, a.MessageID)
	case model.KickMember:
		return s.gateway.KickMember(ctx, a.ChatID, a.UserID)
	case model.ForwardMessage:
		return s.gateway.ForwardMessage(ctx, a.ToChatID, a.FromChatID, a.MessageID)
	case model.SendInviteLink:
		return s.sendInviteLink(ctx, a)
	default:
		return fmt.Errorf("unknown action type %T", action)
	}
}

func (s *Service) sendInviteLink(ctx context.Context, action model.SendInviteLink) error {
	key := fmt.Sprintf("joinLinkFor%d", action.ChatID)

	link, err := s.cache.GetOrCompute(ctx, key, s.linkTTL, func(ctx context.Context) (string, error) {
		return s.gateway.ExportInviteLink(ctx, action.ChatID)
	})
	if err != nil {
		// Export denied: no link, no reply. Expected when the bot lacks the
		// invite permission.
		s.logger.Debug("invite link unavailable", "error", err, "chat_id", action.ChatID)
		return nil
	}
	if link == "" {
		return nil
	}

	format := action.Format
	if format == "" {
		format = "%s"
	}
	return s.gateway.SendMessage(ctx, action.ChatID, fmt.Sprintf(format, link), action.ReplyTo, "")
}

func actionName(action model.Action) string {
	switch action.(type) {
	case model.SendMessage:
		return "send_message"
	case model.DeleteMessage:
		return "delete_message"
	case model.KickMember:
		return "kick_member"
	case model.ForwardMessage:
		return "forward_message"
	case model.SendInviteLink:
		return "send_invite_link"
	default:
		return "unknown"
	}
}
