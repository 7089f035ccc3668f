package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/response"
)

// bindJSON 绑定请求体,失败时写400响应并返回false
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "malformed request body: %v", err))
		return false
	}
	return true
}

// pathID 解析路径中的数字ID,非法时写400响应并返回false
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeInvalidParams, "invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// queryInt 解析查询参数中的整数,缺省或非法时返回def
func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
