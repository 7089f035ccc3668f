package order

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/order"
)

// OrderList 分页订单列表
type OrderList struct {
	Orders   []*order.Order `json:"orders"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// uiStatusGroups 买家侧列表的展示分组 → 订单状态集合
// disputes分组不走状态,单独用DisputedOnly过滤。
var uiStatusGroups = map[string][]order.Status{
	"unpaid":         {order.StatusPending},
	"to_be_shipped":  {order.StatusConfirmed, order.StatusProcessing},
	"shipped":        {order.StatusShipped},
	"to_be_reviewed": {order.StatusDelivered},
}

// ListOrdersUseCase 订单查询:买家自己的列表、单详情、管理员全量列表
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// normalizePaging 与仓储层同一套规则,保证响应里回显的是实际生效的分页参数
func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// ListByUser 买家自己的订单
// status接受展示分组(unpaid/to_be_shipped/shipped/to_be_reviewed/disputes)
// 或原始订单状态;空值返回全部,未知值拒绝。
func (uc *ListOrdersUseCase) ListByUser(ctx context.Context, userID uint, status string, page, pageSize int) (*OrderList, error) {
	page, pageSize = normalizePaging(page, pageSize)
	filter := order.UserListFilter{Page: page, PageSize: pageSize}
	switch {
	case status == "":
	case status == "disputes":
		filter.DisputedOnly = true
	default:
		if group, ok := uiStatusGroups[status]; ok {
			filter.Statuses = group
		} else if s := order.Status(status); s.Valid() {
			filter.Statuses = []order.Status{s}
		} else {
			return nil, order.ErrInvalidStatus
		}
	}

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return &OrderList{Orders: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get 买家查看自己的订单详情,他人订单表现为404
func (uc *ListOrdersUseCase) Get(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

// GetByNumber 买家按订单号查看自己的订单
func (uc *ListOrdersUseCase) GetByNumber(ctx context.Context, userID uint, orderNumber string) (*order.Order, error) {
	o, err := uc.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

// ListAll 管理员列表,支持状态/支付状态过滤与订单号/邮箱搜索
func (uc *ListOrdersUseCase) ListAll(ctx context.Context, filter order.ListFilter) (*OrderList, error) {
	filter.Page, filter.PageSize = normalizePaging(filter.Page, filter.PageSize)
	orders, total, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &OrderList{Orders: orders, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// GetAny 管理员查看任意订单
func (uc *ListOrdersUseCase) GetAny(ctx context.Context, orderID uint) (*order.Order, error) {
	return uc.orderRepo.FindByID(ctx, orderID)
}
