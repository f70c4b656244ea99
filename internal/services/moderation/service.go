package moderation

import (
	"fmt"
	"strings"

	"github.com/nimah79/telegram-observer-bot/internal/domain/enums"
	"github.com/nimah79/telegram-observer-bot/internal/domain/model"
)

// Spelling-variant nudge for the group: three common misspellings of the
// Persian spelling of "Ubuntu". A fixed substring rule, not NLP.
const (
	spellingCorrect = "اوبونتو"
	spellingNudge   = "اوبونتو*"
)

var spellingVariants = []string{"ابنتو", "ابونتو", "اوبنتو"}

// TemplateStore resolves command names to stored reply text. Builtins
// (help, rules, link) live in their own namespace; group commands resolve
// only through the answer lookups and are opt-in by existence.
type TemplateStore interface {
	HasAnswer(name string) bool
	ReadAnswer(name string) (string, error)
	ReadBuiltin(name string) (string, error)
}

// Service decides which actions fire for a normalized event. It holds no
// per-event state; the only inputs besides the event are the admin registry,
// the bot's own identity and the template store, all fixed at construction.
type Service struct {
	adminList   []int64
	adminSet    map[int64]struct{}
	botUsername string
	templates   TemplateStore
}

func NewService(adminIDs []int64, botUsername string, templates TemplateStore) *Service {
	set := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		set[id] = struct{}{}
	}
	return &Service{
		adminList:   adminIDs,
		adminSet:    set,
		botUsername: strings.TrimSpace(botUsername),
		templates:   templates,
	}
}

func (s *Service) IsAdmin(userID int64) bool {
	_, ok := s.adminSet[userID]
	return ok
}

// Decide maps one event to its ordered action list. An empty list means the
// event needs no moderation.
func (s *Service) Decide(event model.Event) []model.Action {
	switch event.ChatKind {
	case enums.ChatPrivate:
		if event.ContentKind == enums.ContentText {
			return s.decidePrivateText(event)
		}
	case enums.ChatGroup:
		switch event.ContentKind {
		case enums.ContentText:
			return s.decideGroupText(event)
		case enums.ContentDocument:
			return s.decideGroupDocument(event)
		case enums.ContentMembership:
			return s.decideGroupMembership(event)
		}
	}
	// Other chat kinds are reserved; no rules defined.
	return nil
}

func (s *Service) decidePrivateText(event model.Event) []model.Action {
	text := event.Text

	switch {
	case strings.HasPrefix(text, "ping"):
		return []model.Action{model.SendMessage{ChatID: event.ChatID, Text: "pong"}}
	case strings.HasPrefix(text, "id"):
		return []model.Action{model.SendMessage{
			ChatID: event.ChatID,
			Text:   fmt.Sprintf("Your ID is: %d", event.ChatID),
		}}
	case strings.HasPrefix(text, "help"):
		return s.templateReply(event.ChatID, "help")
	case strings.HasPrefix(text, "rules"):
		return s.templateReply(event.ChatID, "rules")
	default:
		actions := []model.Action{model.SendMessage{ChatID: event.ChatID, Text: "Incorrect command!"}}
		return append(actions, s.templateReply(event.ChatID, "help")...)
	}
}

func (s *Service) decideGroupText(event model.Event) []model.Action {
	text := event.Text
	replyTarget := event.ReplyTarget()

	var actions []model.Action

	// Bot-authored text never stands, regardless of content.
	if event.SenderIsBot {
		actions = append(actions, model.DeleteMessage{ChatID: event.ChatID, MessageID: event.MessageID})
	}

	switch {
	case strings.HasPrefix(text, "!report"):
		for _, adminID := range s.adminList {
			actions = append(actions,
				model.ForwardMessage{ToChatID: adminID, FromChatID: event.ChatID, MessageID: event.MessageID},
				model.ForwardMessage{ToChatID: adminID, FromChatID: event.ChatID, MessageID: replyTarget},
			)
		}
		actions = append(actions, model.DeleteMessage{ChatID: event.ChatID, MessageID: event.MessageID})

	case strings.HasPrefix(text, "!link"):
		actions = append(actions, model.SendInviteLink{
			ChatID:  event.ChatID,
			ReplyTo: replyTarget,
			Format:  s.linkFormat(),
		})

	case strings.HasPrefix(text, "!remove"):
		if s.IsAdmin(event.SenderID) {
			if event.IsReply {
				actions = append(actions, model.DeleteMessage{ChatID: event.ChatID, MessageID: replyTarget})
			}
			actions = append(actions, model.DeleteMessage{ChatID: event.ChatID, MessageID: event.MessageID})
		}

	case strings.HasPrefix(text, "!"):
		name := strings.ToLower(strings.TrimSpace(text[1:]))
		if s.templates.HasAnswer(name) {
			if content, err := s.templates.ReadAnswer(name); err == nil {
				actions = append(actions, model.SendMessage{
					ChatID:    event.ChatID,
					Text:      content,
					ReplyTo:   replyTarget,
					ParseMode: "markdown",
				})
			}
		}

	case hasSpellingVariant(text):
		actions = append(actions, model.SendMessage{
			ChatID:  event.ChatID,
			Text:    spellingNudge,
			ReplyTo: event.MessageID,
		})
	}

	return actions
}

func (s *Service) decideGroupDocument(event model.Event) []model.Action {
	if !strings.HasSuffix(event.DocumentName, ".apk") {
		return nil
	}
	if s.IsAdmin(event.SenderID) {
		return nil
	}
	// Delete then kick; both best-effort, the dispatcher attempts the kick
	// even when the delete fails.
	return []model.Action{
		model.DeleteMessage{ChatID: event.ChatID, MessageID: event.MessageID},
		model.KickMember{ChatID: event.ChatID, UserID: event.SenderID},
	}
}

func (s *Service) decideGroupMembership(event model.Event) []model.Action {
	delta := event.Membership
	if delta == nil {
		return nil
	}

	var actions []model.Action

	// The bot removes its own kick notices: a leave notice authored by the
	// bot account gets deleted.
	if delta.LeftMember != nil && s.botUsername != "" && event.SenderUsername == s.botUsername {
		actions = append(actions, model.DeleteMessage{ChatID: event.ChatID, MessageID: event.MessageID})
	}

	if len(delta.Joined) == 0 {
		return actions
	}

	// Plain self-join notices are noise; clean them up.
	if len(delta.Joined) == 1 && delta.Joined[0].ID == event.SenderID {
		actions = append(actions, model.DeleteMessage{ChatID: event.ChatID, MessageID: event.MessageID})
	}

	botJoined := false
	for _, member := range delta.Joined {
		if member.IsBot {
			botJoined = true
			break
		}
	}
	if botJoined {
		actions = append(actions, model.KickMember{ChatID: event.ChatID, UserID: event.SenderID})
		for _, member := range delta.Joined {
			actions = append(actions, model.KickMember{ChatID: event.ChatID, UserID: member.ID})
		}
	}

	return actions
}

func (s *Service) templateReply(chatID int64, name string) []model.Action {
	content, err := s.templates.ReadBuiltin(name)
	if err != nil {
		return nil
	}
	return []model.Action{model.SendMessage{ChatID: chatID, Text: content}}
}

func (s *Service) linkFormat() string {
	if content, err := s.templates.ReadBuiltin("link"); err == nil {
		return content
	}
	return "%s"
}

// hasSpellingVariant reports whether the text contains a known misspelling
// while the correctly spelled form is absent. The correct-form check
// short-circuits so a correct mention never triggers the nudge.
func hasSpellingVariant(text string) bool {
	if strings.Contains(text, spellingCorrect) {
		return false
	}
	for _, variant := range spellingVariants {
		if strings.Contains(text, variant) {
			return true
		}
	}
	return false
}
