package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 结算链路集成测试
// 只依赖注册接口能造出的数据;商品/地址需要后台种子数据的场景
// 由应用层的内存仓储测试覆盖。

func TestCheckoutRequiresAuth(t *testing.T) {
	RequireServer(t)

	resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
		"addressId": 1,
	}, "")
	assert.Equal(t, 40100, resp.Code, "anonymous checkout must be rejected")
}

func TestCheckoutWithUnknownAddress(t *testing.T) {
	RequireServer(t)
	_, token := RegisterTestUser(t, "checkout_addr")

	resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
		"addressId": 999999999,
	}, token)
	assert.Equal(t, 40406, resp.Code, "unknown address must map to address-not-found")
}

func TestCartLifecycle(t *testing.T) {
	RequireServer(t)
	_, token := RegisterTestUser(t, "cart_user")

	// 新用户的购物车按需创建,初始为空
	resp := GetJSON(t, BaseURL+"/cart", token)
	require.Equal(t, 0, resp.Code, "get cart failed: %s", resp.Message)

	var snapshot CartData
	require.NoError(t, json.Unmarshal(resp.Data, &snapshot))
	assert.NotZero(t, snapshot.CartID)
	assert.Zero(t, snapshot.ItemCount)
	assert.Zero(t, snapshot.Subtotal)

	// 清空是幂等的
	clearResp := DeleteJSON(t, BaseURL+"/cart", token)
	assert.Equal(t, 0, clearResp.Code)

	// 空购物车结算必须被拒绝(地址检查之后才轮到购物车,
	// 这里用不存在的地址跳不过去,所以直接断言错误码非0)
	checkoutResp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
		"addressId": 999999999,
	}, token)
	assert.NotEqual(t, 0, checkoutResp.Code)
}

func TestDiscountValidateOnEmptyCart(t *testing.T) {
	RequireServer(t)
	_, token := RegisterTestUser(t, "discount_user")

	resp := PostJSON(t, BaseURL+"/discounts/validate", map[string]string{
		"code": "WELCOME10",
	}, token)
	assert.Equal(t, 40004, resp.Code, "validate against empty cart must report empty cart")
}

func TestShippingMethodsArePublic(t *testing.T) {
	RequireServer(t)

	resp := GetJSON(t, BaseURL+"/shipping/methods", "")
	assert.Equal(t, 0, resp.Code)
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	RequireServer(t)
	_, token := RegisterTestUser(t, "not_admin")

	resp := GetJSON(t, BaseURL+"/orders/admin/all", token)
	assert.Equal(t, 40104, resp.Code, "customer role must not reach admin listing")
}

func TestLogoutBlacklistsToken(t *testing.T) {
	RequireServer(t)
	_, token := RegisterTestUser(t, "logout_user")

	logoutResp := PostJSON(t, BaseURL+"/users/logout", nil, token)
	require.Equal(t, 0, logoutResp.Code, "logout failed: %s", logoutResp.Message)

	// 登出后的Token必须被黑名单拦截
	resp := GetJSON(t, BaseURL+"/cart", token)
	assert.Equal(t, 40102, resp.Code)
}
