package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/storefront/internal/application/order"
	"github.com/xiebiao/storefront/internal/domain/order"
	"github.com/xiebiao/storefront/internal/interface/http/dto"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase  *apporder.CreateOrderUseCase
	cancelOrderUseCase  *apporder.CancelOrderUseCase
	trackOrderUseCase   *apporder.TrackOrderUseCase
	acceptOrderUseCase  *apporder.AcceptOrderUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
	listOrdersUseCase   *apporder.ListOrdersUseCase
}

func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
	trackOrderUseCase *apporder.TrackOrderUseCase,
	acceptOrderUseCase *apporder.AcceptOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase:  createOrderUseCase,
		cancelOrderUseCase:  cancelOrderUseCase,
		trackOrderUseCase:   trackOrderUseCase,
		acceptOrderUseCase:  acceptOrderUseCase,
		updateStatusUseCase: updateStatusUseCase,
		listOrdersUseCase:   listOrdersUseCase,
	}
}

// CreateOrder 结算下单
// @Summary      结算下单
// @Description  购物车结算为订单:逐行预占库存,失败自动补偿
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body apporder.CreateOrderRequest true "结算信息"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "购物车为空或库存不足"
// @Failure      404 {object} response.Response "地址或配送方式不存在"
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req apporder.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = middleware.MustGetUserID(c)

	o, err := h.createOrderUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewOrderResponse(o))
}

// ListOrders 我的订单列表
// @Summary      我的订单列表
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "状态过滤"
// @Param        page query int false "页码"
// @Param        pageSize query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	h.listByStatus(c, c.Query("status"))
}

// ListOrdersByStatus 按展示分组查询我的订单
// @Summary      按状态分组查询订单
// @Description  status取展示分组(unpaid/to_be_shipped/shipped/to_be_reviewed/disputes)或原始订单状态
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        status path string true "状态分组"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /orders/status/{status} [get]
func (h *OrderHandler) ListOrdersByStatus(c *gin.Context) {
	h.listByStatus(c, c.Param("status"))
}

func (h *OrderHandler) listByStatus(c *gin.Context, status string) {
	userID := middleware.MustGetUserID(c)
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 20)

	result, err := h.listOrdersUseCase.ListByUser(c.Request.Context(), userID, status, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewOrderResponses(result.Orders), result.Total, result.Page, result.PageSize)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := middleware.MustGetUserID(c)

	o, err := h.listOrdersUseCase.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// GetOrderByNumber 按订单号查询
// @Summary      按订单号查询订单
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        orderNumber path string true "订单号"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Router       /orders/number/{orderNumber} [get]
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	o, err := h.listOrdersUseCase.GetByNumber(c.Request.Context(), userID, c.Param("orderNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  仅pending/confirmed可取消,库存在同一事务内回补
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "当前状态不可取消"
// @Router       /orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := middleware.MustGetUserID(c)

	o, err := h.cancelOrderUseCase.Execute(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// TrackOrder 物流追踪
// @Summary      物流追踪
// @Description  ref可为数字ID或ORD-前缀订单号,返回派生的里程碑清单
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID或订单号"
// @Success      200 {object} response.Response{data=dto.TrackingResponse}
// @Router       /orders/{id}/track [get]
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.trackOrderUseCase.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.TrackingResponse{
		Order:     dto.NewOrderResponse(result.Order),
		Checklist: result.Checklist,
	})
}

// AcceptOrder 确认收货
// @Summary      确认收货
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "订单未送达"
// @Router       /orders/{id}/accept [put]
func (h *OrderHandler) AcceptOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := middleware.MustGetUserID(c)

	o, err := h.acceptOrderUseCase.Execute(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// AdminListOrders 管理端订单列表
// @Summary      管理端订单列表
// @Tags         订单管理
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "订单状态"
// @Param        paymentStatus query string false "支付状态"
// @Param        search query string false "订单号/邮箱搜索"
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /orders/admin/all [get]
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	filter := order.ListFilter{
		Status:        order.Status(c.Query("status")),
		PaymentStatus: order.PaymentStatus(c.Query("paymentStatus")),
		Search:        c.Query("search"),
		Page:          queryInt(c, "page", 1),
		PageSize:      queryInt(c, "pageSize", 20),
	}

	result, err := h.listOrdersUseCase.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewOrderResponses(result.Orders), result.Total, result.Page, result.PageSize)
}

// AdminGetOrder 管理端订单详情
// @Summary      管理端订单详情
// @Tags         订单管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Router       /orders/admin/{id} [get]
func (h *OrderHandler) AdminGetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.listOrdersUseCase.GetAny(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// UpdateOrderStatus 管理端更新订单状态
// @Summary      更新订单状态
// @Description  状态只能沿pending→confirmed→processing→shipped→delivered向前推进,允许跳级
// @Tags         订单管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body apporder.UpdateStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "非法状态或倒退"
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req apporder.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	req.OrderID = id

	o, err := h.updateStatusUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}
