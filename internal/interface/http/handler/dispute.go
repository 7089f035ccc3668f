package handler

import (
	"github.com/gin-gonic/gin"

	appdispute "github.com/xiebiao/storefront/internal/application/dispute"
	"github.com/xiebiao/storefront/internal/interface/http/middleware"
	"github.com/xiebiao/storefront/pkg/response"
)

// DisputeHandler 纠纷HTTP处理器
type DisputeHandler struct {
	openDisputeUseCase    *appdispute.OpenDisputeUseCase
	resolveDisputeUseCase *appdispute.ResolveDisputeUseCase
}

func NewDisputeHandler(openDisputeUseCase *appdispute.OpenDisputeUseCase, resolveDisputeUseCase *appdispute.ResolveDisputeUseCase) *DisputeHandler {
	return &DisputeHandler{
		openDisputeUseCase:    openDisputeUseCase,
		resolveDisputeUseCase: resolveDisputeUseCase,
	}
}

// OpenDispute 发起纠纷
// @Summary      发起纠纷
// @Description  同一订单同时只允许一条未结纠纷
// @Tags         纠纷模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appdispute.OpenDisputeRequest true "纠纷内容"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "订单已有未结纠纷"
// @Router       /disputes [post]
func (h *DisputeHandler) OpenDispute(c *gin.Context) {
	var req appdispute.OpenDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = middleware.MustGetUserID(c)

	d, err := h.openDisputeUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, d)
}

// ResolveDispute 管理员裁定纠纷
// @Summary      裁定纠纷
// @Description  裁定为refunded时,订单状态与支付状态同步强制为refunded
// @Tags         纠纷管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "纠纷ID"
// @Param        request body appdispute.ResolveDisputeRequest true "裁定结果"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /disputes/{id}/status [put]
func (h *DisputeHandler) ResolveDispute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req appdispute.ResolveDisputeRequest
	if !bindJSON(c, &req) {
		return
	}
	req.DisputeID = id
	req.AdminID = middleware.MustGetUserID(c)

	d, err := h.resolveDisputeUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, d)
}
