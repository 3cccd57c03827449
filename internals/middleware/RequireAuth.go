package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AryanVohra-Kiwi/library-management-system/initializers"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/auth"
	"github.com/AryanVohra-Kiwi/library-management-system/internals/models"
	logger "github.com/AryanVohra-Kiwi/library-management-system/loggers"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	ctxUserIDKey = "user_id"
	ctxEmailKey  = "email"
	ctxRoleKey   = "role"
)

type AccessDetails struct {
	AccessUuid string
	UserID     uint
	Email      string
	Role       models.Role
}

type RefreshDetails struct {
	RefreshUuid string
	UserID      uint
}

type TokenPair struct {
	AccessToken  string
	AccessUuid   string
	AtExpires    int64
	RefreshToken string
	RefreshUuid  string
	RtExpires    int64
}

// GenerateTokensAndSaveInCookies issues a fresh access/refresh pair for the
// user, stores the token uuids in redis and sets both cookies.
func GenerateTokensAndSaveInCookies(c *gin.Context, user *models.UserProfile) error {
	tokenPair, err := createTokenPair(user)
	if err != nil {
		logger.Logger.Error("failed to create token pair: ", err)
		return err
	}
	if err := saveTokenPair(c.Request.Context(), tokenPair, user.ID); err != nil {
		logger.Logger.Error("failed to save tokens in redis: ", err)
		return err
	}
	c.SetCookie("access_token", tokenPair.AccessToken, int(accessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(refreshTokenTTL.Seconds()), "/", "", false, true)
	return nil
}

func createTokenPair(user *models.UserProfile) (*TokenPair, error) {
	token := &TokenPair{
		AtExpires:   time.Now().Add(accessTokenTTL).Unix(),
		RtExpires:   time.Now().Add(refreshTokenTTL).Unix(),
		AccessUuid:  uuid.New().String(), // keys for token metadata in redis
		RefreshUuid: uuid.New().String(),
	}

	atClaims := jwt.MapClaims{
		"access_uuid": token.AccessUuid,
		"user_id":     float64(user.ID),
		"email":       user.Email,
		"role":        string(user.Role),
		"exp":         token.AtExpires,
	}
	at := jwt.NewWithClaims(jwt.SigningMethodHS256, atClaims)

	var err error
	token.AccessToken, err = at.SignedString([]byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		logger.Logger.Error("signing of access token failed: ", err)
		return nil, err
	}

	rtClaims := jwt.MapClaims{
		"refresh_uuid": token.RefreshUuid,
		"user_id":      float64(user.ID),
		"exp":          token.RtExpires,
	}
	rt := jwt.NewWithClaims(jwt.SigningMethodHS256, rtClaims)
	token.RefreshToken, err = rt.SignedString([]byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		logger.Logger.Error("signing of refresh token failed: ", err)
		return nil, err
	}
	return token, nil
}

func saveTokenPair(ctx context.Context, tokenObj *TokenPair, userID uint) error {
	at := time.Unix(tokenObj.AtExpires, 0)
	rt := time.Unix(tokenObj.RtExpires, 0)
	now := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	userVal := strconv.FormatUint(uint64(userID), 10)
	if err := initializers.Client.Set(ctx, tokenObj.AccessUuid, userVal, at.Sub(now)).Err(); err != nil {
		return err
	}
	return initializers.Client.Set(ctx, tokenObj.RefreshUuid, userVal, rt.Sub(now)).Err()
}

// AuthenticateMiddleware resolves the calling principal from the access
// token cookie, falling back to the refresh flow when the access token is
// missing or expired.
func AuthenticateMiddleware(c *gin.Context) {
	tokenString, err := c.Cookie("access_token")
	if err != nil {
		refreshTokenFlow(c)
		return
	}
	details, err := extractAccessTokenMetadata(tokenString)
	if err != nil {
		refreshTokenFlow(c)
		return
	}
	if err := fetchAuth(c.Request.Context(), details.AccessUuid); err != nil {
		logger.Logger.Error("access token revoked or expired: ", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired or invalid"})
		c.Abort()
		return
	}
	setPrincipal(c, details.UserID, details.Email, details.Role)
	c.Next()
}

// refreshTokenFlow rotates the pair off a valid refresh token so a stale
// access token does not force a new login.
func refreshTokenFlow(c *gin.Context) {
	refreshString, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
		return
	}
	details, err := extractRefreshTokenMetadata(refreshString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
		return
	}
	if err := fetchAuth(c.Request.Context(), details.RefreshUuid); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, login again"})
		c.Abort()
		return
	}

	var user models.UserProfile
	if err := initializers.DB.First(&user, details.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
		return
	}

	// single use: drop the old refresh uuid before issuing a new pair
	initializers.Client.Del(c.Request.Context(), details.RefreshUuid)
	if err := GenerateTokensAndSaveInCookies(c, &user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
		return
	}
	setPrincipal(c, user.ID, user.Email, user.Role)
	c.Next()
}

// RevokeTokens deletes the redis metadata for both cookies and clears them;
// used by logout.
func RevokeTokens(c *gin.Context) {
	if tokenString, err := c.Cookie("access_token"); err == nil {
		if details, err := extractAccessTokenMetadata(tokenString); err == nil {
			initializers.Client.Del(c.Request.Context(), details.AccessUuid)
		}
	}
	if refreshString, err := c.Cookie("refresh_token"); err == nil {
		if details, err := extractRefreshTokenMetadata(refreshString); err == nil {
			initializers.Client.Del(c.Request.Context(), details.RefreshUuid)
		}
	}
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
}

func setPrincipal(c *gin.Context, userID uint, email string, role models.Role) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxEmailKey, email)
	c.Set(ctxRoleKey, role)
}

// PrincipalFromContext rebuilds the authenticated principal stored by
// AuthenticateMiddleware.
func PrincipalFromContext(c *gin.Context) (auth.Principal, error) {
	userID, ok := c.Get(ctxUserIDKey)
	if !ok {
		return auth.Principal{}, errors.New("no authenticated principal in context")
	}
	email, _ := c.Get(ctxEmailKey)
	role, _ := c.Get(ctxRoleKey)
	return auth.Principal{
		UserID: userID.(uint),
		Email:  email.(string),
		Role:   role.(models.Role),
	}, nil
}

func extractAccessTokenMetadata(tokenString string) (*AccessDetails, error) {
	secret := os.Getenv("ACCESS_SECRET")
	if secret == "" {
		return nil, errors.New("ACCESS_SECRET is not set")
	}
	claims, err := extractTokenMetadata(tokenString, secret, []string{"access_uuid", "user_id", "email", "role"})
	if err != nil {
		return nil, err
	}
	return &AccessDetails{
		AccessUuid: claims["access_uuid"].(string),
		UserID:     uint(claims["user_id"].(float64)),
		Email:      claims["email"].(string),
		Role:       models.Role(claims["role"].(string)),
	}, nil
}

func extractRefreshTokenMetadata(refreshString string) (*RefreshDetails, error) {
	secret := os.Getenv("REFRESH_SECRET")
	if secret == "" {
		return nil, errors.New("REFRESH_SECRET is not set")
	}
	claims, err := extractTokenMetadata(refreshString, secret, []string{"refresh_uuid", "user_id"})
	if err != nil {
		return nil, err
	}
	return &RefreshDetails{
		RefreshUuid: claims["refresh_uuid"].(string),
		UserID:      uint(claims["user_id"].(float64)),
	}, nil
}

func extractTokenMetadata(tokenString string, secret string, expectedClaims []string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	for _, name := range expectedClaims {
		if _, ok := claims[name]; !ok {
			return nil, fmt.Errorf("missing claim %q", name)
		}
	}
	return claims, nil
}

// fetchAuth verifies the token uuid is still live in redis.
func fetchAuth(ctx context.Context, tokenUuid string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return initializers.Client.Get(ctx, tokenUuid).Err()
}
