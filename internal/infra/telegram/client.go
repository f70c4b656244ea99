package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type UpdateHandler func(context.Context, tgbotapi.Update)

// Client is the only component that talks to the Telegram Bot API. Every
// call may fail independently; callers decide whether a failure matters.
type Client struct {
	api         *tgbotapi.BotAPI
	logger      *slog.Logger
	handler     UpdateHandler
	pollTimeout int
	dryRun      bool
}

func NewClient(token string, pollTimeout int, logger *slog.Logger, handler UpdateHandler) (*Client, error) {
	if handler == nil {
		return nil, errors.New("telegram update handler is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(token) == "" {
		return &Client{
			logger:      logger,
			handler:     handler,
			pollTimeout: pollTimeout,
			dryRun:      true,
		}, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Client{
		api:         api,
		logger:      logger,
		handler:     handler,
		pollTimeout: pollTimeout,
	}, nil
}

func (c *Client) Start(ctx context.Context) error {
	if c.dryRun {
		c.logger.Warn("BOT_TOKEN is empty, running in dry mode")
		<-ctx.Done()
		return nil
	}

	timeout := c.pollTimeout
	if timeout <= 0 {
		timeout = 30
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := c.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handler(ctx, update)
		}
	}
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, replyTo int, parseMode string) error {
	if c.dryRun {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	if parseMode != "" {
		msg.ParseMode = parseMode
	}
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if c.dryRun {
		return nil
	}
	if _, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

func (c *Client) KickMember(ctx context.Context, chatID int64, userID int64) error {
	if c.dryRun {
		return nil
	}
	ban := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
	}
	if _, err := c.api.Request(ban); err != nil {
		return fmt.Errorf("kick user %d from chat %d: %w", userID, chatID, err)
	}
	return nil
}

func (c *Client) ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error {
	if c.dryRun {
		return nil
	}
	if _, err := c.api.Send(tgbotapi.NewForward(toChatID, fromChatID, messageID)); err != nil {
		return fmt.Errorf("forward message %d to chat %d: %w", messageID, toChatID, err)
	}
	return nil
}

// ExportInviteLink asks the platform for the chat's invite link. An empty
// link with a nil error never happens from the real API; callers treat any
// error as "no link available".
func (c *Client) ExportInviteLink(ctx context.Context, chatID int64) (string, error) {
	if c.dryRun {
		return "", nil
	}
	link, err := c.api.GetInviteLink(tgbotapi.ChatInviteLinkConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return "", fmt.Errorf("export invite link for chat %d: %w", chatID, err)
	}
	return link, nil
}
