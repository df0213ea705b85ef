package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
)

// ==================== NotifyService 送达回调服务 ====================

// NotifyConfig 回调配置
type NotifyConfig struct {
	WebhookURL string        // 为空则不推送
	Timeout    time.Duration // 单次请求超时
	RetryCount int
}

// DefaultNotifyConfig 默认配置
func DefaultNotifyConfig() *NotifyConfig {
	return &NotifyConfig{
		Timeout:    10 * time.Second,
		RetryCount: 3,
	}
}

// NotifyService 订单送达后向外部系统推送事件
// 推送是尽力而为：失败只记日志，不影响订单流程
type NotifyService struct {
	cfg     *NotifyConfig
	client  *resty.Client
	logRepo repository.NotifyLogRepository
}

// NewNotifyService 创建回调服务
func NewNotifyService(cfg *NotifyConfig, logRepo repository.NotifyLogRepository) *NotifyService {
	if cfg == nil {
		cfg = DefaultNotifyConfig()
	}

	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetRetryCount(cfg.RetryCount)

	return &NotifyService{
		cfg:     cfg,
		client:  client,
		logRepo: logRepo,
	}
}

// deliveredEvent 推送报文
type deliveredEvent struct {
	Event       string    `json:"event"`
	OrderID     int64     `json:"order_id"`
	UserID      int64     `json:"user_id"`
	TotalPrice  float64   `json:"total_price"`
	ItemCount   int       `json:"item_count"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// NotifyDelivered 推送送达事件
// 异步执行，调用方不等待
func (s *NotifyService) NotifyDelivered(order *model.Order) {
	if s.cfg.WebhookURL == "" {
		return
	}

	event := &deliveredEvent{
		Event:       "order.delivered",
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalPrice:  order.GetTotalPrice(),
		ItemCount:   len(order.Items),
		DeliveredAt: time.Now(),
	}

	go s.push(order.ID, event)
}

// push 发送请求并落一条回调日志
func (s *NotifyService) push(orderID int64, event *deliveredEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[NotifyService] 报文序列化失败: %v", err)
		return
	}

	entry := &model.NotifyLog{
		OrderID:   orderID,
		TargetURL: s.cfg.WebhookURL,
		Payload:   payload,
	}

	start := time.Now()
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.cfg.WebhookURL)
	entry.DurationMs = time.Since(start).Milliseconds()

	if err != nil {
		entry.Error = err.Error()
		log.Printf("[NotifyService] 订单 %d 回调失败: %v", orderID, err)
	} else {
		entry.StatusCode = resp.StatusCode()
		entry.Success = resp.StatusCode() >= 200 && resp.StatusCode() < 300
		if !entry.Success {
			entry.Error = resp.String()
			log.Printf("[NotifyService] 订单 %d 回调被拒绝，状态码 %d", orderID, resp.StatusCode())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("[NotifyService] 回调日志写入失败: %v", err)
	}
}
