package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// 上流（Kakao）呼び出しの失敗
var ErrUpstream = errors.New("kakao: upstream request failed")

// /v2/user/me のレスポンス。使う項目だけ
type UserInfo struct {
	ID           int64       `json:"id"`
	Properties   *Properties `json:"properties,omitempty"`
	KakaoAccount *Account    `json:"kakao_account,omitempty"`
}

type Properties struct {
	Nickname     *string `json:"nickname,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

type Account struct {
	Email   *string         `json:"email,omitempty"`
	Profile *AccountProfile `json:"profile,omitempty"`
}

type AccountProfile struct {
	Nickname        *string `json:"nickname,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Timeout      time.Duration
}

// Clientはリトライしない。タイムアウトだけ付ける
type Client struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"profile_nickname", "profile_image", "account_email"},
		},
		userInfoURL: cfg.UserInfoURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// 認可画面のURL
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// 認可コードをKakaoのアクセストークンに交換
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: exchange: %v", ErrUpstream, err)
	}
	return tok.AccessToken, nil
}

// アクセストークンでプロフィールを取得
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	hc.Timeout = c.httpClient.Timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return &info, nil
}
