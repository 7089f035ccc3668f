package handler

import (
	"github.com/gin-gonic/gin"

	appshipping "github.com/xiebiao/storefront/internal/application/shipping"
	"github.com/xiebiao/storefront/pkg/response"
)

// ShippingHandler 配送HTTP处理器
type ShippingHandler struct {
	shippingUseCase *appshipping.UseCase
}

func NewShippingHandler(shippingUseCase *appshipping.UseCase) *ShippingHandler {
	return &ShippingHandler{shippingUseCase: shippingUseCase}
}

// ListMethods 配送方式列表
// @Summary      配送方式列表
// @Tags         配送模块
// @Produce      json
// @Param        country query string false "国家代码过滤"
// @Success      200 {object} response.Response
// @Router       /shipping/methods [get]
func (h *ShippingHandler) ListMethods(c *gin.Context) {
	methods, err := h.shippingUseCase.ListMethods(c.Request.Context(), c.Query("country"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, methods)
}

// Calculate 运费试算
// @Summary      运费试算
// @Description  用与结算相同的定价函数计算运费,weight超限返回错误
// @Tags         配送模块
// @Accept       json
// @Produce      json
// @Param        request body appshipping.CalculateRequest true "试算参数"
// @Success      200 {object} response.Response{data=appshipping.CalculateResult}
// @Failure      400 {object} response.Response "超过最大承运重量"
// @Failure      404 {object} response.Response "配送方式不存在"
// @Router       /shipping/calculate [post]
func (h *ShippingHandler) Calculate(c *gin.Context) {
	var req appshipping.CalculateRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.shippingUseCase.Calculate(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
