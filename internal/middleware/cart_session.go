package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxCartSessionKey = "cart_session" // string（uuid）

	CartCookieName = "kanap_cart"
	cartCookieTTL  = 365 * 24 * time.Hour
)

// カートセッションのミドルウェア。
// cookieのJWT（HS256）からセッションIDを取り出し、無い・壊れている場合は新しく発行する。
func CartSession(secret string, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(CartCookieName); err == nil {
				if sid, err := ParseSessionToken(secret, ck.Value); err == nil {
					c.Set(CtxCartSessionKey, sid)
					return next(c)
				}
			}

			//新しいセッション
			sid := uuid.NewString()
			token, err := IssueSessionToken(secret, sid, time.Now())
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("session error"))
			}

			c.SetCookie(&http.Cookie{
				Name:     CartCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cartCookieTTL.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(CtxCartSessionKey, sid)
			return next(c)
		}
	}
}

// SessionID はcontextのセッションIDを返す。
func SessionID(c echo.Context) (string, bool) {
	sid, ok := c.Get(CtxCartSessionKey).(string)
	return sid, ok && sid != ""
}

// セッションIDを署名する
func IssueSessionToken(secret string, sid string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// 署名を検証してセッションIDを取り出す
func ParseSessionToken(secret string, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sid, err := parseString(claims["sid"])
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(sid); err != nil {
		return "", errors.New("invalid sid")
	}
	return sid, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}
