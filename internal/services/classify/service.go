package classify

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nimah79/telegram-observer-bot/internal/domain/enums"
	"github.com/nimah79/telegram-observer-bot/internal/domain/model"
)

// zwnj is the zero-width non-joiner some keyboards inject into text.
// Stripped before any prefix or substring matching downstream.
const zwnj = "‌"

// Classify normalizes one raw update into an Event. The second return value
// is false for updates that carry no message body (edited messages, callback
// queries and the like); those never reach the moderation engine.
func Classify(update tgbotapi.Update) (model.Event, bool) {
	message := update.Message
	if message == nil {
		return model.Event{}, false
	}

	event := model.Event{
		ChatID:      message.Chat.ID,
		ChatKind:    chatKind(message.Chat),
		ContentKind: contentKind(message),
		MessageID:   message.MessageID,
	}

	if message.From != nil {
		event.SenderID = message.From.ID
		event.SenderUsername = message.From.UserName
		event.SenderIsBot = message.From.IsBot
	}

	if message.ReplyToMessage != nil {
		event.IsReply = true
		event.ReplyMessageID = message.ReplyToMessage.MessageID
	}

	switch event.ContentKind {
	case enums.ContentText:
		event.Text = strings.ReplaceAll(message.Text, zwnj, "")
	case enums.ContentDocument:
		event.DocumentName = message.Document.FileName
	case enums.ContentMembership:
		event.Membership = membershipDelta(message)
	}

	return event, true
}

func chatKind(chat *tgbotapi.Chat) enums.ChatKind {
	if chat == nil {
		return enums.ChatOther
	}
	switch chat.Type {
	case "private":
		return enums.ChatPrivate
	case "supergroup":
		return enums.ChatGroup
	default:
		return enums.ChatOther
	}
}

func contentKind(message *tgbotapi.Message) enums.ContentKind {
	switch {
	case message.Document != nil:
		return enums.ContentDocument
	case message.LeftChatMember != nil || len(message.NewChatMembers) > 0:
		return enums.ContentMembership
	case message.Text != "":
		return enums.ContentText
	default:
		return enums.ContentOther
	}
}

func membershipDelta(message *tgbotapi.Message) *model.MembershipDelta {
	delta := &model.MembershipDelta{}

	if left := message.LeftChatMember; left != nil {
		delta.LeftMember = &model.Member{
			ID:       left.ID,
			Username: left.UserName,
			IsBot:    left.IsBot,
		}
	}

	for _, joined := range message.NewChatMembers {
		delta.Joined = append(delta.Joined, model.Member{
			ID:       joined.ID,
			Username: joined.UserName,
			IsBot:    joined.IsBot,
		})
	}

	return delta
}
