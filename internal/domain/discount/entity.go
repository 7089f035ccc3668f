package discount

import (
	"strings"
	"time"
)

// Type 折扣类型
type Type string

const (
	TypePercentage Type = "percentage" // 按小计百分比
	TypeFixed      Type = "fixed"      // 固定金额
)

// Code 折扣码实体
// Value对percentage是百分数(20表示20%),对fixed是金额(kobo)。
// UsageLimit为0表示不限次数;CategoryIDs/ProductIDs为空表示全场可用。
type Code struct {
	ID            uint
	Code          string // 统一大写存储
	Description   string
	Type          Type
	Value         int64
	MinOrderValue int64 // 小计低于该值不可用
	MaxDiscount   int64 // percentage的封顶金额,0表示不封顶
	ValidFrom     time.Time
	ValidUntil    time.Time
	IsActive      bool
	UsageLimit    int
	UsageCount    int
	UserLimit     int // 单用户可用次数,0表示不限
	CategoryIDs   []uint
	ProductIDs    []uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Normalize 规范化折扣码输入:去空白并转大写
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// InWindow 检查时刻t是否在有效期内
func (c *Code) InWindow(t time.Time) bool {
	return !t.Before(c.ValidFrom) && !t.After(c.ValidUntil)
}

// UsedUp 检查总使用次数是否已达上限
func (c *Code) UsedUp() bool {
	return c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit
}
