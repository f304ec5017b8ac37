package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-chat-app/config/common"
	"campus-chat-app/entity"
)

const (
	issuer   = "campus-chat-app"
	audience = "campus-chat-app"
)

type JWT struct {
	config *common.Config
}

func NewJWT(config *common.Config) *JWT {
	return &JWT{config: config}
}

func (j *JWT) GenerateToken(user *entity.User) (string, error) {
	secretKey := j.config.GetJwtConfig()
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"aud":      audience,
		"iss":      issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(j.config.GetJwtTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func (j *JWT) VerifyJwtToken(token string) (jwt.MapClaims, error) {
	secretKey := j.config.GetJwtConfig()

	tokenParse, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))

	if err != nil {
		return nil, err
	}

	if claims, ok := tokenParse.Claims.(jwt.MapClaims); ok && tokenParse.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func (j *JWT) GetUserIdFromToken(token string) (uint, error) {
	claims, err := j.VerifyJwtToken(token)
	if err != nil {
		return 0, err
	}
	return UserIdFromClaims(claims)
}

// UserIdFromClaims reads the numeric user_id claim. JSON numbers decode
// as float64.
func UserIdFromClaims(claims jwt.MapClaims) (uint, error) {
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, errors.New("token has no user_id claim")
	}
	return uint(userID), nil
}
