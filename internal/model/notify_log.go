package model

import "gorm.io/datatypes"

// NotifyLog 订单送达回调记录
// 只记录，失败不影响订单流程
type NotifyLog struct {
	BaseModel
	OrderID   int64  `gorm:"index;not null"`
	TargetURL string `gorm:"size:512"`

	// 推送的原始报文
	Payload datatypes.JSON `gorm:"type:jsonb"`

	Success    bool   `gorm:"default:false"`
	StatusCode int    `gorm:"default:0"`
	Error      string `gorm:"type:text"`
	DurationMs int64
}

func (NotifyLog) TableName() string {
	return "notify_logs"
}
