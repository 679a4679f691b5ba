package notify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/models"
)

const facebookGraphBase = "https://graph.facebook.com/v18.0"

// FacebookCAPISender Facebook Conversions API 通知发送器
// 集成配置需要 pixel_id 与 access_token 两个字段。
type FacebookCAPISender struct {
	client  *http.Client
	apiBase string
}

// NewFacebookCAPISender 创建 Facebook CAPI 发送器
func NewFacebookCAPISender(client *http.Client) *FacebookCAPISender {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &FacebookCAPISender{client: client, apiBase: facebookGraphBase}
}

// Kind 返回渠道类型
func (s *FacebookCAPISender) Kind() string {
	return constants.IntegrationKindFacebookCAPI
}

// Send 上报 Lead 事件到 Conversions API
func (s *FacebookCAPISender) Send(ctx context.Context, integration models.Integration, msg Message) error {
	pixelID := integration.ConfigString("pixel_id")
	accessToken := integration.ConfigString("access_token")
	if pixelID == "" || accessToken == "" {
		return fmt.Errorf("facebook integration %s missing pixel_id or access_token", integration.Name)
	}

	userData := map[string]interface{}{}
	if msg.CustomerPhone != "" {
		userData["ph"] = []string{hashIdentifier(msg.CustomerPhone)}
	}
	if msg.CustomerEmail != "" {
		userData["em"] = []string{hashIdentifier(msg.CustomerEmail)}
	}

	body, err := json.Marshal(map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"event_name":    "Lead",
				"event_time":    msg.CreatedAt.Unix(),
				"event_id":      msg.OrderID,
				"action_source": "website",
				"user_data":     userData,
			},
		},
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/events?access_token=%s", s.apiBase, pixelID, accessToken)
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
		return fmt.Errorf("facebook http status %d", resp.StatusCode)
	}
	return nil
}

// hashIdentifier CAPI 要求用户标识归一化后做 SHA-256
func hashIdentifier(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
