package app

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nimah79/telegram-observer-bot/internal/services/classify"
)

// routeUpdate processes one inbound update end to end: classify, decide,
// execute. Each update is an independent unit of work; action order within
// an update is preserved by the dispatcher.
func (a *App) routeUpdate(ctx context.Context, update tgbotapi.Update) {
	event, ok := classify.Classify(update)
	if !ok {
		return
	}

	actions := a.engine.Decide(event)
	if len(actions) == 0 {
		return
	}

	a.logger.Debug("dispatching actions",
		"chat_id", event.ChatID,
		"chat_kind", event.ChatKind,
		"content_kind", event.ContentKind,
		"actions", len(actions),
	)
	a.dispatcher.Execute(ctx, actions)
}
