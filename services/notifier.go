package services

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

// VendorNotifier pushes new-order messages to vendors over Telegram and
// records every dispatch as a Notification row. Delivery is best-effort:
// callers fire it in a goroutine and never see an error.
type VendorNotifier struct {
	DB  *gorm.DB
	bot *tgbotapi.BotAPI
}

// NewVendorNotifier builds a notifier. An empty token leaves the bot nil;
// dispatches are then recorded but not sent, which keeps development and
// tests free of network calls.
func NewVendorNotifier(db *gorm.DB, token string) *VendorNotifier {
	n := &VendorNotifier{DB: db}
	if token == "" {
		return n
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		utils.ErrorLogger.Printf("telegram bot unavailable, notifications disabled: %v", err)
		return n
	}
	n.bot = bot
	return n
}

// Notify sends one message to a vendor topic. Failures are logged and
// swallowed; the Notification row keeps the audit trail either way.
func (n *VendorNotifier) Notify(vendorSlug string, chatID int64, orderID *uint, title, body, priority string) {
	sent := false
	if n.bot != nil && chatID != 0 {
		msg := tgbotapi.NewMessage(chatID, title+"\n\n"+body)
		if _, err := n.bot.Send(msg); err != nil {
			utils.ErrorLogger.Printf("notify %s failed: %v", vendorSlug, err)
		} else {
			sent = true
		}
	}

	notification := models.Notification{
		VendorSlug: vendorSlug,
		OrderID:    orderID,
		Title:      title,
		Message:    body,
		Priority:   priority,
		Sent:       sent,
	}
	if err := n.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("failed to record notification for %s: %v", vendorSlug, err)
	}
}

// NotifyNewOrder sends one itemized message per distinct vendor on the
// order. Run it in a goroutine: a down notifier must never fail checkout.
func (n *VendorNotifier) NotifyNewOrder(order models.Order, items []models.OrderItem, resolver *VendorResolver) {
	type group struct {
		name   string
		chatID int64
		lines  []string
	}
	groups := map[string]*group{}
	var slugs []string

	for _, item := range items {
		res := resolver.Resolve(item.VendorSlug, item.RestaurantName)
		g, ok := groups[res.Slug]
		if !ok {
			name := res.Name
			if name == "" {
				name = item.RestaurantName
			}
			g = &group{name: name, chatID: res.TelegramChatID}
			groups[res.Slug] = g
			slugs = append(slugs, res.Slug)
		}
		g.lines = append(g.lines, fmt.Sprintf("%dx %s (%s)",
			item.Quantity, item.Name, utils.FormatCurrencyPHP(item.Price)))
	}

	for _, slugKey := range slugs {
		g := groups[slugKey]
		title := fmt.Sprintf("New order #%d", order.ID)
		body := fmt.Sprintf("%s\n\nDeliver to: %s (%s)\nCustomer: %s",
			strings.Join(g.lines, "\n"), order.DeliveryAddress, order.Landmark, order.CustomerName)
		orderID := order.ID
		n.Notify(slugKey, g.chatID, &orderID, title, body, "high")
	}
}
