package auth

import (
	"context"
	"errors"
	"fmt"

	"devmarket/internal/logger"
	"devmarket/internal/repository"
	"devmarket/internal/token"
)

// Rotateはaccess（期限切れ可）とrefreshから新しい組を出す。
// 古いrefreshは上書きで即無効になる
func (u *AuthUsecase) Rotate(ctx context.Context, accessRaw string, refreshRaw string) (*TokenPair, error) {
	if err := u.validator.ValidateReissue(accessRaw, refreshRaw); err != nil {
		return nil, err
	}

	//refreshは通常検証（期限切れは別扱い）
	rc, err := u.codec.Decode(refreshRaw)
	if err != nil {
		var expired *token.ExpiredError
		if errors.As(err, &expired) {
			u.discardExpired(ctx, expired.Claims.Subject, refreshRaw)
			return nil, fmt.Errorf("%w: %w", ErrRefreshTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: refresh: %v", ErrTokenInvalid, err)
	}
	if rc.Kind != token.KindRefresh {
		return nil, fmt.Errorf("%w: not a refresh token", ErrTokenInvalid)
	}

	//accessは期限切れでもsubjectを取り出す
	ac, err := u.codec.DecodeForRotationOnly(accessRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: access: %v", ErrTokenInvalid, err)
	}
	if ac.Kind != token.KindAccess {
		return nil, fmt.Errorf("%w: not an access token", ErrTokenInvalid)
	}

	//持ち主が違う組み合わせは拒否
	if rc.Subject != ac.Subject {
		u.log.Warn().
			Str("access_sub", logger.MaskProviderID(ac.Subject)).
			Str("refresh_sub", logger.MaskProviderID(rc.Subject)).
			Msg("reissue with swapped tokens")
		return nil, fmt.Errorf("%w: owner mismatch", ErrTokenInvalid)
	}

	var pair *TokenPair
	err = u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		user, err := r.Users().FindByProviderID(ctx, ac.Subject)
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		// 同一ユーザーの再発行はここで直列化される
		stored, err := r.RefreshTokens().FindByUserIDForUpdate(ctx, user.ID)
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return ErrWrongRefreshToken
		}
		if err != nil {
			return err
		}
		if stored.UserID != user.ID || stored.TokenHash != hashToken(refreshRaw) {
			return ErrWrongRefreshToken
		}

		p, refreshExp, err := u.issuePair(user)
		if err != nil {
			return err
		}
		if err := r.RefreshTokens().Upsert(ctx, user.ID, hashToken(p.RefreshToken), refreshExp); err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, normalize(err)
	}

	u.log.Info().Str("provider_id", logger.MaskProviderID(ac.Subject)).Msg("tokens reissued")
	return pair, nil
}

// 期限切れのrefreshが保存済みのものと同じなら消しておく
func (u *AuthUsecase) discardExpired(ctx context.Context, subject string, refreshRaw string) {
	user, err := u.users.FindByProviderID(ctx, subject)
	if err != nil {
		return
	}
	stored, err := u.rtRepo.FindByUserID(ctx, user.ID)
	if err != nil || stored.TokenHash != hashToken(refreshRaw) {
		return
	}
	if err := u.rtRepo.DeleteByUserID(ctx, user.ID); err != nil {
		u.log.Error().Err(err).Msg("delete expired refresh token")
	}
}
