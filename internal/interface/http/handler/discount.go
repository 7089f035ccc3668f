package handler

import (
	"github.com/gin-gonic/gin"

	appdiscount "github.com/xiebiao/storefront/internal/application/discount"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// DiscountHandler 折扣HTTP处理器
type DiscountHandler struct {
	validateUseCase *appdiscount.ValidateUseCase
}

func NewDiscountHandler(validateUseCase *appdiscount.ValidateUseCase) *DiscountHandler {
	return &DiscountHandler{validateUseCase: validateUseCase}
}

// Validate 折扣码校验
// @Summary      折扣码校验
// @Description  对当前购物车校验折扣码,与结算的静默降级不同,这里返回具体拒绝原因
// @Tags         折扣模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appdiscount.ValidateRequest true "折扣码"
// @Success      200 {object} response.Response{data=appdiscount.ValidateResult}
// @Failure      400 {object} response.Response "码无效/过期/次数用尽/不满足门槛"
// @Router       /discounts/validate [post]
func (h *DiscountHandler) Validate(c *gin.Context) {
	var req appdiscount.ValidateRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = middleware.MustGetUserID(c)

	result, err := h.validateUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
