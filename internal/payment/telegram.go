package payment

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Messenger is the outbound Telegram capability the pipeline needs: direct
// messages and single-use group invites. The bot instance satisfies it via
// TelegramMessenger; tests substitute a recorder.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	CreateInviteLink(ctx context.Context, groupID int64, name string) (string, error)
}

type TelegramMessenger struct {
	Bot *telego.Bot
}

func NewTelegramMessenger(bot *telego.Bot) *TelegramMessenger {
	return &TelegramMessenger{Bot: bot}
}

func (m *TelegramMessenger) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := m.Bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text))
	if err != nil {
		return fmt.Errorf("failed to send message to %d: %w", chatID, err)
	}
	return nil
}

func (m *TelegramMessenger) CreateInviteLink(ctx context.Context, groupID int64, name string) (string, error) {
	link, err := m.Bot.CreateChatInviteLink(ctx, &telego.CreateChatInviteLinkParams{
		ChatID:             tu.ID(groupID),
		Name:               name,
		MemberLimit:        1,
		CreatesJoinRequest: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create invite link: %w", err)
	}
	return link.InviteLink, nil
}
