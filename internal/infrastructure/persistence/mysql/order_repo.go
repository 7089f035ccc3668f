package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/storefront/internal/domain/order"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(含明细,同一事务)
// 订单号撞唯一键时换号重试一次,再撞视为内部错误。
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	err := r.create(ctx, o)
	if err != nil && isDuplicateError(err) {
		o.OrderNumber = order.GenerateOrderNumber()
		if err = r.create(ctx, o); err != nil && isDuplicateError(err) {
			return order.ErrDuplicateOrderNumber
		}
	}
	return err
}

func (r *orderRepository) create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create order")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// Delete 删除订单及明细(结算补偿用,硬删除)
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)
	if err := db.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete order items")
	}
	if err := db.Delete(&OrderModel{}, id).Error; err != nil {
		return apperrors.Wrap(err, "failed to delete order")
	}
	return nil
}

// FindByID 根据ID查找订单(含明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query order")
	}
	return toOrderEntity(&model), nil
}

// FindByOrderNumber 根据订单号查找订单(含明细)
func (r *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Where("order_number = ?", orderNumber).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query order")
	}
	return toOrderEntity(&model), nil
}

// Update 更新订单状态字段
// 明细是不可变快照,不随Update写回。
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":             string(o.Status),
			"payment_status":     string(o.PaymentStatus),
			"payment_reference":  o.PaymentReference,
			"estimated_delivery": o.EstimatedDelivery,
			"dispute_id":         o.DisputeID,
			"pickup_ready":       o.PickupReady,
			"pickup_ready_at":    o.PickupReadyAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ListByUserID 用户订单分页列表
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, filter order.UserListFilter) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.DisputedOnly {
		query = query.Where("dispute_id > 0")
	}
	return r.page(query, filter.Page, filter.PageSize)
}

// List 管理端订单分页列表
func (r *orderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&OrderModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", string(filter.PaymentStatus))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number LIKE ? OR contact_email LIKE ?", pattern, pattern)
	}
	return r.page(query, filter.Page, filter.PageSize)
}

func (r *orderRepository) page(query *gorm.DB, page, pageSize int) ([]*order.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count orders")
	}

	var models []OrderModel
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to query orders")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func toOrderModel(o *order.Order) *OrderModel {
	model := &OrderModel{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		UserID:             o.UserID,
		AddressID:          o.AddressID,
		ContactEmail:       o.ContactEmail,
		ContactPhone:       o.ContactPhone,
		ShippingMethodID:   o.ShippingMethodID,
		ShippingMethodName: o.ShippingMethodName,
		ShippingCost:       o.ShippingCost,
		Subtotal:           o.Subtotal,
		DiscountCode:       o.DiscountCode,
		DiscountAmount:     o.DiscountAmount,
		Tax:                o.Tax,
		Total:              o.Total,
		Currency:           o.Currency,
		Status:             string(o.Status),
		PaymentStatus:      string(o.PaymentStatus),
		PaymentMethod:      o.PaymentMethod,
		PaymentReference:   o.PaymentReference,
		Notes:              o.Notes,
		EstimatedDelivery:  o.EstimatedDelivery,
		DisputeID:          o.DisputeID,
		PickupReady:        o.PickupReady,
		PickupReadyAt:      o.PickupReadyAt,
		Items:              make([]OrderItemModel, len(o.Items)),
	}
	for i, it := range o.Items {
		model.Items[i] = OrderItemModel{
			ID:           it.ID,
			OrderID:      it.OrderID,
			ProductID:    it.ProductID,
			VariantID:    it.VariantID,
			ProductTitle: it.ProductTitle,
			ProductBrand: it.ProductBrand,
			Size:         it.Size,
			Color:        it.Color,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Subtotal:     it.Subtotal,
		}
	}
	return model
}

func toOrderEntity(model *OrderModel) *order.Order {
	o := &order.Order{
		ID:                 model.ID,
		OrderNumber:        model.OrderNumber,
		UserID:             model.UserID,
		AddressID:          model.AddressID,
		ContactEmail:       model.ContactEmail,
		ContactPhone:       model.ContactPhone,
		ShippingMethodID:   model.ShippingMethodID,
		ShippingMethodName: model.ShippingMethodName,
		ShippingCost:       model.ShippingCost,
		Subtotal:           model.Subtotal,
		DiscountCode:       model.DiscountCode,
		DiscountAmount:     model.DiscountAmount,
		Tax:                model.Tax,
		Total:              model.Total,
		Currency:           model.Currency,
		Status:             order.Status(model.Status),
		PaymentStatus:      order.PaymentStatus(model.PaymentStatus),
		PaymentMethod:      model.PaymentMethod,
		PaymentReference:   model.PaymentReference,
		Notes:              model.Notes,
		EstimatedDelivery:  model.EstimatedDelivery,
		DisputeID:          model.DisputeID,
		PickupReady:        model.PickupReady,
		PickupReadyAt:      model.PickupReadyAt,
		Items:              make([]order.Item, len(model.Items)),
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
	for i, it := range model.Items {
		o.Items[i] = order.Item{
			ID:           it.ID,
			OrderID:      it.OrderID,
			ProductID:    it.ProductID,
			VariantID:    it.VariantID,
			ProductTitle: it.ProductTitle,
			ProductBrand: it.ProductBrand,
			Size:         it.Size,
			Color:        it.Color,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Subtotal:     it.Subtotal,
		}
	}
	return o
}
