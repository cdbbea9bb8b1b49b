package services

import (
	"context"
	"fmt"
	"strings"

	"afterhourshvac/internal/config"
	"afterhourshvac/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// NotificationService tells the owner about new inbound work. Delivery
// failures are logged and never fail the request that triggered them.
type NotificationService interface {
	BookingCreated(ctx context.Context, booking *models.Booking)
	ApplicationSubmitted(ctx context.Context, app *models.JobApplication)
	QuoteRequested(ctx context.Context, quote *models.QuoteRequest)
}

// TelegramSender is the part of tgbotapi.BotAPI the notifier needs.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramNotifier struct {
	bot    TelegramSender
	chatID int64
	logger zerolog.Logger
}

// NewNotificationService returns a Telegram notifier, or a no-op one when
// the bot is not configured.
func NewNotificationService(cfg config.TelegramConfig, logger zerolog.Logger) (NotificationService, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return NopNotifier{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return NewTelegramNotifier(bot, cfg.ChatID, logger), nil
}

func NewTelegramNotifier(bot TelegramSender, chatID int64, logger zerolog.Logger) NotificationService {
	return &telegramNotifier{bot: bot, chatID: chatID, logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *telegramNotifier) send(kind, text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Warn().Err(err).Str("kind", kind).Msg("notification not delivered")
	}
}

func (n *telegramNotifier) BookingCreated(_ context.Context, b *models.Booking) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "New booking: %s ($%.2f)\n", b.ServiceName, b.ServicePrice)
	fmt.Fprintf(&sb, "%s, %s, %s\n", b.CustomerName, b.CustomerPhone, b.CustomerEmail)
	if b.CustomerAddress != "" {
		fmt.Fprintf(&sb, "Address: %s\n", b.CustomerAddress)
	}
	fmt.Fprintf(&sb, "Payment: %s", b.PaymentStatus)
	n.send("booking", sb.String())
}

func (n *telegramNotifier) ApplicationSubmitted(_ context.Context, app *models.JobApplication) {
	text := fmt.Sprintf("New application for %s: %s %s (%d yrs), %s, %s",
		app.Position, app.FirstName, app.LastName, app.ExperienceYears, app.Phone, app.Email)
	n.send("application", text)
}

func (n *telegramNotifier) QuoteRequested(_ context.Context, q *models.QuoteRequest) {
	text := fmt.Sprintf("Quote request: %s for a %s property\n%s, %s, %s\n%s",
		q.ServiceType, q.PropertyType, q.Name, q.Phone, q.Email, q.Message)
	n.send("quote", text)
}

type NopNotifier struct{}

func (NopNotifier) BookingCreated(context.Context, *models.Booking)             {}
func (NopNotifier) ApplicationSubmitted(context.Context, *models.JobApplication) {}
func (NopNotifier) QuoteRequested(context.Context, *models.QuoteRequest)         {}
