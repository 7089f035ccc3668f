package user

import (
	"context"

	"github.com/xiebiao/storefront/pkg/jwt"
)

// LogoutUseCase 用户登出
// Access Token进黑名单直到自然过期,并删除会话。
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 登出
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, token string) error {
	if err := uc.sessionStore.AddToBlacklist(ctx, token, uc.jwtManager.AccessTokenExpire()); err != nil {
		return err
	}
	return uc.sessionStore.DeleteSession(ctx, userID)
}
