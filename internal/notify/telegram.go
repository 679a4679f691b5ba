package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/models"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramSender Telegram Bot API 通知发送器
// 集成配置需要 bot_token 与 chat_id 两个字段。
type TelegramSender struct {
	client  *http.Client
	apiBase string
}

// NewTelegramSender 创建 Telegram 发送器
func NewTelegramSender(client *http.Client) *TelegramSender {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &TelegramSender{client: client, apiBase: telegramAPIBase}
}

// Kind 返回渠道类型
func (s *TelegramSender) Kind() string {
	return constants.IntegrationKindTelegram
}

// Send 推送线索消息到 Telegram 群/频道
func (s *TelegramSender) Send(ctx context.Context, integration models.Integration, msg Message) error {
	botToken := integration.ConfigString("bot_token")
	chatID := integration.ConfigString("chat_id")
	if botToken == "" || chatID == "" {
		return fmt.Errorf("telegram integration %s missing bot_token or chat_id", integration.Name)
	}

	body, err := json.Marshal(map[string]interface{}{
		"chat_id": chatID,
		"text":    formatLeadText(msg),
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram http status %d", resp.StatusCode)
	}
	return nil
}

func formatLeadText(msg Message) string {
	var b strings.Builder
	b.WriteString("New lead\n")
	b.WriteString("Name: " + msg.CustomerName + "\n")
	b.WriteString("Phone: " + msg.CustomerPhone + "\n")
	if msg.CustomerEmail != "" {
		b.WriteString("Email: " + msg.CustomerEmail + "\n")
	}
	if msg.ProductName != "" {
		b.WriteString("Product: " + msg.ProductName + "\n")
	}
	if msg.Text != "" {
		b.WriteString("Message: " + msg.Text + "\n")
	}
	b.WriteString("Source: " + msg.Source)
	return b.String()
}
