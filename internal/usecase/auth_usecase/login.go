package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"devmarket/internal/domain/model"
	"devmarket/internal/logger"
	"devmarket/internal/repository"
	"devmarket/internal/token"
)

// handlerからusecaseに渡す入力（providerIdかkakaoAccessTokenのどちらか）
type LoginInput struct {
	ProviderID       string
	Nickname         string
	Email            string
	ProfileURL       string
	KakaoAccessToken string
}

// ログイン。kakaoAccessTokenがあればKakaoに問い合わせる
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*TokenPair, error) {
	if err := u.validator.ValidateLogin(in); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.KakaoAccessToken) != "" {
		profile, err := u.resolver.ResolveFromProviderToken(ctx, in.KakaoAccessToken)
		if err != nil {
			return nil, normalize(err)
		}
		return u.login(ctx, profile)
	}

	profile := SocialProfile{
		ProviderID: strings.TrimSpace(in.ProviderID),
		Nickname:   strings.TrimSpace(in.Nickname),
		Email:      optional(in.Email),
		ProfileURL: optional(in.ProfileURL),
	}
	return u.login(ctx, profile)
}

// OAuth2コールバックの認可コードでログイン
func (u *AuthUsecase) LoginWithAuthorizationCode(ctx context.Context, code string) (*TokenPair, error) {
	profile, err := u.resolver.ResolveFromAuthorizationCode(ctx, code)
	if err != nil {
		return nil, normalize(err)
	}
	return u.login(ctx, profile)
}

// ユーザー作成/更新とrefreshの保存は同じTxで
func (u *AuthUsecase) login(ctx context.Context, profile SocialProfile) (*TokenPair, error) {
	var pair *TokenPair

	err := u.txm.WithinTx(ctx, func(r repository.TxRepos) error {
		user, err := u.findOrCreateUser(ctx, r.Users(), profile)
		if err != nil {
			return err
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

	u.log.Info().Str("provider_id", logger.MaskProviderID(profile.ProviderID)).Msg("login succeeded")
	return pair, nil
}

// 初回は作成、以降はnickname/email/profileだけ更新
func (u *AuthUsecase) findOrCreateUser(ctx context.Context, users repository.UserRepository, p SocialProfile) (*model.User, error) {
	user, err := users.FindByProviderID(ctx, p.ProviderID)
	if errors.Is(err, repository.ErrUserNotFound) {
		nickname := p.Nickname
		if nickname == "" {
			nickname = DefaultNickname
		}
		user = &model.User{
			ProviderID: p.ProviderID,
			Nickname:   nickname,
			Email:      p.Email,
			ProfileURL: p.ProfileURL,
			Role:       model.RoleUser,
			Address:    model.DefaultAddress(),
		}
		err = users.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, err
		}
		// 同時の初回ログインに負けた。勝った側の行を読み直す
		user, err = users.FindByProviderID(ctx, p.ProviderID)
	}
	if err != nil {
		return nil, err
	}

	if applyProfile(user, p) {
		if err := users.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// 変更があればtrue
func applyProfile(user *model.User, p SocialProfile) bool {
	changed := false
	if p.Nickname != "" && p.Nickname != user.Nickname {
		user.Nickname = p.Nickname
		changed = true
	}
	if p.Email != nil && (user.Email == nil || *user.Email != *p.Email) {
		user.Email = p.Email
		changed = true
	}
	if p.ProfileURL != nil && (user.ProfileURL == nil || *user.ProfileURL != *p.ProfileURL) {
		user.ProfileURL = p.ProfileURL
		changed = true
	}
	return changed
}

func (u *AuthUsecase) issuePair(user *model.User) (*TokenPair, time.Time, error) {
	access, _, err := u.codec.Issue(user.ProviderID, token.KindAccess, user.Authorities(), u.accessTTL)
	if err != nil {
		return nil, time.Time{}, err
	}
	refresh, refreshExp, err := u.codec.Issue(user.ProviderID, token.KindRefresh, nil, u.refreshTTL)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresIn:  int64(u.accessTTL.Seconds()),
		RefreshTokenExpiresIn: int64(u.refreshTTL.Seconds()),
	}, refreshExp, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
