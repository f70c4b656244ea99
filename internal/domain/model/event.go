package model

import (
	"github.com/nimah79/telegram-observer-bot/internal/domain/enums"
)

// Event is the normalized view of one inbound platform update. It is built
// once by the classifier and never mutated afterwards; downstream code never
// touches raw platform structs.
type Event struct {
	ChatID         int64
	ChatKind       enums.ChatKind
	SenderID       int64
	SenderUsername string
	SenderIsBot    bool

	ContentKind  enums.ContentKind
	Text         string
	DocumentName string

	MessageID      int
	IsReply        bool
	ReplyMessageID int

	Membership *MembershipDelta
}

// MembershipDelta carries the join/leave fields of a service message.
// LeftMember is nil when nobody left; Joined is empty when nobody joined.
type MembershipDelta struct {
	LeftMember *Member
	Joined     []Member
}

type Member struct {
	ID       int64
	Username string
	IsBot    bool
}

// ReplyTarget resolves the message a group rule should act on: the replied-to
// message when the event is a reply, otherwise the event's own message.
func (e Event) ReplyTarget() int {
	if e.IsReply {
		return e.ReplyMessageID
	}
	return e.MessageID
}
