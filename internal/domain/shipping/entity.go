package shipping

import (
	"time"
)

// Method 配送方式实体
// MinOrderValue > 0且小计达标时免运费;Countries为空表示全球可达。
type Method struct {
	ID               uint
	Name             string
	Description      string
	DeliveryTime     string // 展示文案,如 "3-5 business days"
	DeliveryTimeDays int
	BaseCost         int64   // 基础运费(kobo)
	CostPerKg        int64   // 每公斤加价(kobo)
	MinOrderValue    int64   // 免运费门槛,0表示无门槛
	MaxWeight        float64 // 最大承运重量(kg),0表示不限
	IsActive         bool
	Countries        []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ServesCountry 检查配送方式是否覆盖指定国家
func (m *Method) ServesCountry(country string) bool {
	if len(m.Countries) == 0 || country == "" {
		return true
	}
	for _, c := range m.Countries {
		if c == country {
			return true
		}
	}
	return false
}
