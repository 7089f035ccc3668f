package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/storefront/internal/application/cart"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	getCartUseCase    *appcart.GetCartUseCase
	addItemUseCase    *appcart.AddItemUseCase
	updateItemUseCase *appcart.UpdateItemUseCase
	removeItemUseCase *appcart.RemoveItemUseCase
}

func NewCartHandler(
	getCartUseCase *appcart.GetCartUseCase,
	addItemUseCase *appcart.AddItemUseCase,
	updateItemUseCase *appcart.UpdateItemUseCase,
	removeItemUseCase *appcart.RemoveItemUseCase,
) *CartHandler {
	return &CartHandler{
		getCartUseCase:    getCartUseCase,
		addItemUseCase:    addItemUseCase,
		updateItemUseCase: updateItemUseCase,
		removeItemUseCase: removeItemUseCase,
	}
}

// GetCart 查询购物车
// @Summary      查询购物车
// @Tags         购物车模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.Snapshot}
// @Router       /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	snapshot, err := h.getCartUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshot)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Tags         购物车模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appcart.AddItemRequest true "商品与数量"
// @Success      200 {object} response.Response{data=appcart.Snapshot}
// @Failure      400 {object} response.Response "库存不足"
// @Failure      404 {object} response.Response "商品或变体不存在"
// @Router       /cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req appcart.AddItemRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = middleware.MustGetUserID(c)

	snapshot, err := h.addItemUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshot)
}

// UpdateItem 修改行项数量
// @Summary      修改购物车行项数量
// @Tags         购物车模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path int true "行项ID"
// @Param        request body appcart.UpdateItemRequest true "新数量"
// @Success      200 {object} response.Response{data=appcart.Snapshot}
// @Router       /cart/{itemId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req appcart.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = middleware.MustGetUserID(c)
	req.ItemID = itemID

	snapshot, err := h.updateItemUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshot)
}

// RemoveItem 移除行项
// @Summary      移除购物车行项
// @Tags         购物车模块
// @Produce      json
// @Security     BearerAuth
// @Param        itemId path int true "行项ID"
// @Success      200 {object} response.Response{data=appcart.Snapshot}
// @Router       /cart/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	userID := middleware.MustGetUserID(c)

	snapshot, err := h.removeItemUseCase.Execute(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshot)
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.removeItemUseCase.Clear(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "cart cleared"})
}
