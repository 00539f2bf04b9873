package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"devmarket/internal/infra/kakao"
)

// ニックネームが取れなかった時
const DefaultNickname = "KakaoUser"

// SocialProfileはプロバイダから解決したユーザー情報
type SocialProfile struct {
	ProviderID string
	Nickname   string
	Email      *string
	ProfileURL *string
}

// Resolverはプロバイダのトークン/認可コードからプロフィールを得る
type Resolver struct {
	client ProviderClient
}

func NewResolver(client ProviderClient) *Resolver {
	return &Resolver{client: client}
}

// モバイル：Kakaoのアクセストークンから
func (r *Resolver) ResolveFromProviderToken(ctx context.Context, providerAccessToken string) (SocialProfile, error) {
	info, err := r.client.FetchUserInfo(ctx, providerAccessToken)
	if err != nil {
		return SocialProfile{}, fmt.Errorf("%w: %v", ErrUpstreamAuthFailure, err)
	}
	return profileFromUserInfo(info, ErrUpstreamAuthFailure)
}

// ブラウザ：リダイレクトで戻ってきた認可コードから
func (r *Resolver) ResolveFromAuthorizationCode(ctx context.Context, code string) (SocialProfile, error) {
	if strings.TrimSpace(code) == "" {
		return SocialProfile{}, fmt.Errorf("%w: empty authorization code", ErrOAuth2ProcessFailed)
	}
	at, err := r.client.Exchange(ctx, code)
	if err != nil {
		return SocialProfile{}, fmt.Errorf("%w: %v", ErrUpstreamAuthFailure, err)
	}
	info, err := r.client.FetchUserInfo(ctx, at)
	if err != nil {
		return SocialProfile{}, fmt.Errorf("%w: %v", ErrUpstreamAuthFailure, err)
	}
	return profileFromUserInfo(info, ErrOAuth2ProcessFailed)
}

// idが無い応答はmalformedで返す（経路ごとにエラーが違う）
func profileFromUserInfo(info *kakao.UserInfo, malformed error) (SocialProfile, error) {
	if info == nil || info.ID == 0 {
		return SocialProfile{}, fmt.Errorf("%w: missing id", malformed)
	}

	p := SocialProfile{
		ProviderID: strconv.FormatInt(info.ID, 10),
		Nickname:   DefaultNickname,
	}

	// properties優先、なければkakao_account.profile
	if info.Properties != nil {
		if v := nonEmpty(info.Properties.Nickname); v != nil {
			p.Nickname = *v
		}
		p.ProfileURL = nonEmpty(info.Properties.ProfileImage)
	}
	if info.KakaoAccount != nil {
		p.Email = nonEmpty(info.KakaoAccount.Email)
		if prof := info.KakaoAccount.Profile; prof != nil {
			if p.Nickname == DefaultNickname {
				if v := nonEmpty(prof.Nickname); v != nil {
					p.Nickname = *v
				}
			}
			if p.ProfileURL == nil {
				p.ProfileURL = nonEmpty(prof.ProfileImageURL)
			}
		}
	}
	return p, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
