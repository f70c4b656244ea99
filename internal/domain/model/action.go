package model

// Action is one outbound moderation step. Every variant is independently
// executable and independently fallible; the dispatcher runs them in the
// order the engine produced them.
type Action interface {
	isAction()
}

type SendMessage struct {
	ChatID    int64
	Text      string
	ReplyTo   int    // zero means no reply threading
	ParseMode string // empty means plain text
}

type DeleteMessage struct {
	ChatID    int64
	MessageID int
}

type KickMember struct {
	ChatID int64
	UserID int64
}

type ForwardMessage struct {
	ToChatID   int64
	FromChatID int64
	MessageID  int
}

// SendInviteLink is the one composite action: the dispatcher memoizes the
// chat's invite link through the cache collaborator and sends the formatted
// reply only when a link was obtained. Folding the fetch and the send into a
// single action keeps every other action free of cross-action dependencies.
type SendInviteLink struct {
	ChatID  int64
	ReplyTo int
	// Format is applied to the link with fmt.Sprintf before sending.
	Format string
}

func (SendMessage) isAction()    {}
func (DeleteMessage) isAction()  {}
func (KickMember) isAction()     {}
func (ForwardMessage) isAction() {}
func (SendInviteLink) isAction() {}
