package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cryptoclass-bot/internal/analytics"
	"cryptoclass-bot/internal/models"
	"cryptoclass-bot/internal/payment"
	"cryptoclass-bot/internal/storage"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

var menuItems = []string{"Menu", "Support", "Enquiry", "Subscription", "FAQ"}

type Bot struct {
	Instance    *telego.Bot
	Paystack    *payment.PaystackClient
	NowPayments *payment.NowPaymentsClient
	Store       storage.UserStore
	Grants      *payment.GrantIssuer
	Track       *analytics.Client
}

func NewBot(instance *telego.Bot, paystack *payment.PaystackClient, nowPayments *payment.NowPaymentsClient, store storage.UserStore, grants *payment.GrantIssuer, track *analytics.Client) *Bot {
	return &Bot{
		Instance:    instance,
		Paystack:    paystack,
		NowPayments: nowPayments,
		Store:       store,
		Grants:      grants,
		Track:       track,
	}
}

func mainKeyboard() *telego.ReplyKeyboardMarkup {
	return tu.Keyboard(
		tu.KeyboardRow(
			tu.KeyboardButton("Menu"),
			tu.KeyboardButton("Support"),
		),
		tu.KeyboardRow(
			tu.KeyboardButton("Enquiry"),
			tu.KeyboardButton("Subscription"),
		),
		tu.KeyboardRow(
			tu.KeyboardButton("FAQ"),
		),
	).WithResizeKeyboard()
}

func (b *Bot) Start() {
	updates, _ := b.Instance.UpdatesViaLongPolling(context.Background(), nil)

	handler, _ := th.NewBotHandler(b.Instance, updates)

	// /start command: the only place a user record comes into existence.
	// Webhooks never create records, they require one.
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		message := update.Message
		telegramID := message.From.ID

		if _, err := b.Store.FirstOrCreate(ctx.Context(), telegramID, message.From.Username); err != nil {
			log.Printf("Failed to get/create user: %v", err)
		}

		b.Track.Event("User Started", map[string]interface{}{"userId": telegramID})

		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(message.Chat.ID),
			"Welcome to the Crypto Class Sales Bot! Learn about crypto trading.",
		).WithReplyMarkup(mainKeyboard()))
		return nil
	}, th.CommandEqual("start"))

	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(update.Message.Chat.ID),
			"Here's the menu:\n- Beginner Trading\n- Advanced Strategies\nChoose Subscription to join!",
		))
		return nil
	}, th.TextEqual("Menu"))

	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(update.Message.Chat.ID),
			"Contact @CryptoSupportAdmin or support@cryptoclass.com.",
		))
		return nil
	}, th.TextEqual("Support"))

	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(update.Message.Chat.ID),
			"What's your enquiry? Type your question.",
		))
		return nil
	}, th.TextEqual("Enquiry"))

	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(update.Message.Chat.ID),
			"FAQs:\n1. What is the class about? Crypto trading basics.\n2. Refund policy? No refunds.\n3. How to pay? Card or USDT.",
		))
		return nil
	}, th.TextEqual("FAQ"))

	// Subscription flow
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		telegramID := update.Message.From.ID

		user, err := b.Store.FindByTelegramID(ctx.Context(), telegramID)
		if err == nil && user.Subscribed {
			// Already paid: re-issue the invite instead of charging again.
			b.Grants.IssueGrant(ctx.Context(), telegramID)
			return nil
		}

		keyboard := tu.InlineKeyboard(
			tu.InlineKeyboardRow(
				tu.InlineKeyboardButton("Monthly ($20/mo)").WithCallbackData("sub_monthly"),
				tu.InlineKeyboardButton("Lifetime ($100)").WithCallbackData("sub_lifetime"),
			),
		)

		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(telegramID),
			"Choose subscription type:",
		).WithReplyMarkup(keyboard))
		return nil
	}, th.TextEqual("Subscription"))

	// Tier selected
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		callback := update.CallbackQuery
		telegramID := callback.From.ID
		tier := strings.TrimPrefix(callback.Data, "sub_")

		b.Track.Event("Subscription Type Selected", map[string]interface{}{"userId": telegramID, "type": tier})

		if tier == models.SubscriptionLifetime {
			// Lifetime goes straight to card checkout.
			b.sendCardCheckout(ctx.Context(), telegramID, tier)
		} else {
			keyboard := tu.InlineKeyboard(
				tu.InlineKeyboardRow(
					tu.InlineKeyboardButton("Card").WithCallbackData("pay_card_"+tier),
					tu.InlineKeyboardButton("USDT").WithCallbackData("pay_usdt_"+tier),
				),
			)
			_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(tu.ID(telegramID), "Pay with:").WithReplyMarkup(keyboard))
		}

		_ = ctx.Bot().AnswerCallbackQuery(ctx.Context(), tu.CallbackQuery(callback.ID))
		return nil
	}, th.CallbackDataPrefix("sub_"))

	// Card payment
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		callback := update.CallbackQuery
		tier := strings.TrimPrefix(callback.Data, "pay_card_")

		b.sendCardCheckout(ctx.Context(), callback.From.ID, tier)
		_ = ctx.Bot().AnswerCallbackQuery(ctx.Context(), tu.CallbackQuery(callback.ID))
		return nil
	}, th.CallbackDataPrefix("pay_card_"))

	// USDT payment
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		callback := update.CallbackQuery
		telegramID := callback.From.ID
		tier := strings.TrimPrefix(callback.Data, "pay_usdt_")

		invoice, err := b.NowPayments.CreateInvoice(telegramID, tier)
		if err != nil {
			log.Printf("Failed to create USDT invoice: %v", err)
			_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(tu.ID(telegramID), "Error creating the invoice. Try again or contact support."))
		} else {
			b.Track.Event("USDT Invoice Created", map[string]interface{}{"userId": telegramID, "type": tier})
			_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
				tu.ID(telegramID),
				fmt.Sprintf("Send %v USDT to: %s\nInvoice: %s\nWe'll verify automatically.", invoice.PayAmount, invoice.PayAddress, invoice.InvoiceURL),
			))
		}

		_ = ctx.Bot().AnswerCallbackQuery(ctx.Context(), tu.CallbackQuery(callback.ID))
		return nil
	}, th.CallbackDataPrefix("pay_usdt_"))

	// Free-text enquiries (anything that is not a menu word)
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		text := update.Message.Text
		for _, item := range menuItems {
			if text == item {
				return nil
			}
		}

		b.Track.Event("Enquiry Received", map[string]interface{}{"userId": update.Message.From.ID, "query": text})
		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(update.Message.Chat.ID),
			fmt.Sprintf("Thanks for: %q. We'll review and DM you.", text),
		))
		return nil
	}, th.AnyMessageWithText())

	handler.Start()
}

func (b *Bot) sendCardCheckout(ctx context.Context, telegramID int64, tier string) {
	url, err := b.Paystack.InitializeTransaction(telegramID, tier)
	if err != nil {
		log.Printf("Failed to create card checkout: %v", err)
		_, _ = b.Instance.SendMessage(ctx, tu.Message(tu.ID(telegramID), "Error creating the payment link. Try again or contact support."))
		return
	}

	b.Track.Event("Paystack Transaction Initialized", map[string]interface{}{"userId": telegramID, "type": tier})
	_, _ = b.Instance.SendMessage(ctx, tu.Message(tu.ID(telegramID), fmt.Sprintf("Complete card payment: %s", url)))
}
