package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 全APIの共通レスポンス
type Envelope struct {
	IsSuccess bool        `json:"isSuccess"`
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Result    interface{} `json:"result"`
}

// HTTPステータスとコードの組
type Status struct {
	HTTPStatus int
	Code       string
	Message    string
}

var (
	OK                 = Status{http.StatusOK, "COMMON_200", "success"}
	UserLoginSuccess   = Status{http.StatusCreated, "USER_201", "login succeeded"}
	UserReissueSuccess = Status{http.StatusOK, "USER_200", "tokens reissued"}
	UserLogoutSuccess  = Status{http.StatusOK, "USER_200", "logged out"}
	UserInfoSuccess    = Status{http.StatusOK, "USER_203", "user info"}
	ItemGetSuccess     = Status{http.StatusOK, "ITEM_2003", "items fetched"}
	ItemListEmpty      = Status{http.StatusOK, "CATEGORY_204", "no items"}
)

var (
	BadRequest           = Status{http.StatusBadRequest, "COMMON_400", "bad request"}
	Unauthorized         = Status{http.StatusUnauthorized, "COMMON_401", "unauthorized"}
	Forbidden            = Status{http.StatusForbidden, "COMMON_403", "forbidden"}
	NotFound             = Status{http.StatusNotFound, "COMMON_404", "not found"}
	InternalServerError  = Status{http.StatusInternalServerError, "COMMON_500", "internal server error"}
	TokenExpired         = Status{http.StatusUnauthorized, "JWT_4011", "access token expired"}
	RefreshTokenExpired  = Status{http.StatusUnauthorized, "JWT_4012", "refresh token expired, login again"}
	TokenInvalid         = Status{http.StatusForbidden, "JWT_4032", "invalid token"}
	WrongRefreshToken    = Status{http.StatusNotFound, "JWT_4041", "refresh token does not match"}
	UserNotFound         = Status{http.StatusNotFound, "USER_4041", "user not found"}
	ItemNotFound         = Status{http.StatusNotFound, "ITEM_4041", "item not found"}
	UserNotAuthenticated = Status{http.StatusUnauthorized, "AUTH_0001", "authentication required"}
	UpstreamAuthFailure  = Status{http.StatusUnauthorized, "AUTH_0002", "social provider authentication failed"}
	OAuth2ProcessFailed  = Status{http.StatusForbidden, "USER_2001", "oauth2 login failed"}
)

func OnSuccess(c echo.Context, s Status, result interface{}) error {
	return c.JSON(s.HTTPStatus, Envelope{IsSuccess: true, Code: s.Code, Message: s.Message, Result: result})
}

// 失敗時はresultは常にnull
func OnFailure(c echo.Context, s Status) error {
	return c.JSON(s.HTTPStatus, Envelope{IsSuccess: false, Code: s.Code, Message: s.Message})
}

// 個別メッセージを付けたい時
func OnFailureWithMessage(c echo.Context, s Status, message string) error {
	return c.JSON(s.HTTPStatus, Envelope{IsSuccess: false, Code: s.Code, Message: message})
}
