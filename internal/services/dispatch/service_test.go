package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nimah79/telegram-observer-bot/internal/domain/model"
)

type stubGateway struct {
	calls       []string
	failCalls   map[string]error
	exportLink  string
	exportErr   error
	exportCount int
}

func (g *stubGateway) record(call string) error {
	g.calls = append(g.calls, call)
	if err, ok := g.failCalls[call]; ok {
		return err
	}
	return nil
}

func (g *stubGateway) SendMessage(_ context.Context, chatID int64, text string, replyTo int, parseMode string) error {
	return g.record(fmt.Sprintf("send:%d:%s:%d:%s", chatID, text, replyTo, parseMode))
}

func (g *stubGateway) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	return g.record(fmt.Sprintf("delete:%d:%d", chatID, messageID))
}

func (g *stubGateway) KickMember(_ context.Context, chatID int64, userID int64) error {
	return g.record(fmt.Sprintf("kick:%d:%d", chatID, userID))
}

func (g *stubGateway) ForwardMessage(_ context.Context, toChatID, fromChatID int64, messageID int) error {
	return g.record(fmt.Sprintf("forward:%d:%d:%d", toChatID, fromChatID, messageID))
}

func (g *stubGateway) ExportInviteLink(_ context.Context, chatID int64) (string, error) {
	g.exportCount++
	g.calls = append(g.calls, fmt.Sprintf("export:%d", chatID))
	return g.exportLink, g.exportErr
}

type passthroughCache struct{}

func (passthroughCache) GetOrCompute(ctx context.Context, _ string, _ time.Duration, compute func(context.Context) (string, error)) (string, error) {
	return compute(ctx)
}

type fixedCache struct {
	link string
}

func (c fixedCache) GetOrCompute(context.Context, string, time.Duration, func(context.Context) (string, error)) (string, error) {
	return c.link, nil
}

func TestExecutePreservesOrderAndIsolatesFailures(t *testing.T) {
	gw := &stubGateway{failCalls: map[string]error{
		"forward:1000:-100:42": errors.New("blocked by admin"),
	}}
	svc := NewService(gw, passthroughCache{}, time.Minute, nil)

	svc.Execute(context.Background(), []model.Action{
		model.ForwardMessage{ToChatID: 1000, FromChatID: -100, MessageID: 42},
		model.ForwardMessage{ToChatID: 2000, FromChatID: -100, MessageID: 42},
		model.DeleteMessage{ChatID: -100, MessageID: 42},
	})

	expected := []string{
		"forward:1000:-100:42",
		"forward:2000:-100:42",
		"delete:-100:42",
	}
	if len(gw.calls) != len(expected) {
		t.Fatalf("expected %d calls, got %v", len(expected), gw.calls)
	}
	for i, want := range expected {
		if gw.calls[i] != want {
			t.Fatalf("call %d: expected %q, got %q", i, want, gw.calls[i])
		}
	}
}

func TestSendInviteLinkSendsFormattedReply(t *testing.T) {
	gw := &stubGateway{exportLink: "https://t.me/joinchat/abc"}
	svc := NewService(gw, passthroughCache{}, time.Minute, nil)

	svc.Execute(context.Background(), []model.Action{
		model.SendInviteLink{ChatID: -100, ReplyTo: 42, Format: "join: %s"},
	})

	if gw.exportCount != 1 {
		t.Fatalf("expected one export call, got %d", gw.exportCount)
	}
	want := "send:-100:join: https://t.me/joinchat/abc:42:"
	if gw.calls[len(gw.calls)-1] != want {
		t.Fatalf("expected %q, got %q", want, gw.calls[len(gw.calls)-1])
	}
}

func TestSendInviteLinkDeniedIsSilent(t *testing.T) {
	gw := &stubGateway{exportErr: errors.New("not enough rights")}
	svc := NewService(gw, passthroughCache{}, time.Minute, nil)

	svc.Execute(context.Background(), []model.Action{
		model.SendInviteLink{ChatID: -100, ReplyTo: 42, Format: "join: %s"},
	})

	for _, call := range gw.calls {
		if call != "export:-100" {
			t.Fatalf("expected no message after denied export, got call %q", call)
		}
	}
}

func TestSendInviteLinkUsesCachedValueWithoutExport(t *testing.T) {
	gw := &stubGateway{}
	svc := NewService(gw, fixedCache{link: "https://t.me/joinchat/cached"}, time.Minute, nil)

	svc.Execute(context.Background(), []model.Action{
		model.SendInviteLink{ChatID: -100, ReplyTo: 42},
	})

	if gw.exportCount != 0 {
		t.Fatalf("expected no export call, got %d", gw.exportCount)
	}
	want := "send:-100:https://t.me/joinchat/cached:42:"
	if len(gw.calls) != 1 || gw.calls[0] != want {
		t.Fatalf("expected single send %q, got %v", want, gw.calls)
	}
}
