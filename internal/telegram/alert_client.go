// Package telegram mirrors admin-room notifications into a Telegram chat,
// so on-call staff see new complaints without keeping the dashboard open.
package telegram

import (
	"fmt"
	"log"
	"sync"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/notifyhub"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertClient implements notifyhub.Client over the Telegram Bot API.
// It is registered with the hub like any websocket connection and joined
// to the admin room, receiving the same fan-out.
type AlertClient struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
	Send   chan models.Notification

	closeOnce sync.Once
}

// NewAlertClient authenticates the bot and prepares the client. It is not
// registered with the hub yet; the caller does that.
func NewAlertClient(token string, chatID int64) (*AlertClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Authorized Telegram bot %s", bot.Self.UserName)

	return &AlertClient{
		BotAPI: bot,
		ChatID: chatID,
		Send:   make(chan models.Notification, 32),
	}, nil
}

// GetUserID identifies the bot in the hub's registry. It is a synthetic
// principal; nothing routes user-room notifications to it.
func (c *AlertClient) GetUserID() string { return "telegram-alert-bot" }

func (c *AlertClient) GetSendChannel() chan<- models.Notification { return c.Send }

// Run forwards every received notification as a Telegram message until
// the send channel closes.
func (c *AlertClient) Run() {
	go func() {
		for n := range c.Send {
			text := fmt.Sprintf("%s\n%s", n.Title, n.Message)
			if _, err := c.BotAPI.Send(tgbotapi.NewMessage(c.ChatID, text)); err != nil {
				log.Printf("ERROR: Failed to send Telegram alert: %v", err)
			}
		}
	}()
}

// Close stops the forwarding goroutine. Safe to call more than once.
func (c *AlertClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// Register joins the client to the admin room on the given hub.
func (c *AlertClient) Register(hub *notifyhub.ManagerService) {
	hub.RegisterCh <- c
	hub.JoinCh <- notifyhub.JoinRequest{Client: c, Room: notifyhub.RoleRoom(models.RoleAdmin)}
	c.Run()
}
