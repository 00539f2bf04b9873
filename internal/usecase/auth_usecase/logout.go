package auth

import (
	"context"
	"errors"
	"fmt"

	"devmarket/internal/logger"
	"devmarket/internal/repository"
	"devmarket/internal/token"
)

// Revokeはaccessの持ち主のrefreshを削除する。何度呼んでも成功
func (u *AuthUsecase) Revoke(ctx context.Context, accessRaw string) error {
	if err := u.validator.ValidateLogout(accessRaw); err != nil {
		return err
	}

	claims, err := u.codec.Decode(accessRaw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.Kind != token.KindAccess {
		return fmt.Errorf("%w: not an access token", ErrTokenInvalid)
	}

	user, err := u.users.FindByProviderID(ctx, claims.Subject)
	if errors.Is(err, repository.ErrUserNotFound) {
		// 消すものが無い
		return nil
	}
	if err != nil {
		return normalize(err)
	}

	if err := u.rtRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return normalize(err)
	}

	u.log.Info().Str("provider_id", logger.MaskProviderID(claims.Subject)).Msg("logged out")
	return nil
}

// 管理者による強制ログアウト
func (u *AuthUsecase) ForceLogout(ctx context.Context, providerID string) error {
	if err := u.validator.ValidateForceLogout(providerID); err != nil {
		return err
	}

	user, err := u.users.FindByProviderID(ctx, providerID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return normalize(err)
	}

	if err := u.rtRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return normalize(err)
	}
	return nil
}
