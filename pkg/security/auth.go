package security

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"restaurant/internal/repository"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// secretKey resolves JWT_SECRET on first use so importing the package
// never aborts the process by itself.
func secretKey() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			if err := godotenv.Load(); err == nil {
				secret = os.Getenv("JWT_SECRET")
			}
		}

		if secret == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}

		jwtSecret = []byte(secret)
	})

	return jwtSecret
}

// AuthenticateUser verifies credentials against the users table. Suspended
// accounts cannot log in regardless of password.
func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "password_hash", "role", "suspended").
		From("users").
		Where(goqu.Ex{"username": username})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("unknown user %s", username)
	}

	if user.Suspended {
		return nil, fmt.Errorf("account %s is suspended", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID int, role string, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   strconv.Itoa(userID),
		"role":     role,
		"username": username,
		"exp":      time.Now().Add(time.Hour * 12).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// UserIDFromContext returns the authenticated user's id as set by
// JWTMiddleware.
func UserIDFromContext(c *gin.Context) (int, error) {
	raw, exists := c.Get("userID")
	if !exists {
		return 0, fmt.Errorf("no authenticated user in context")
	}

	id, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("userID claim is not a string")
	}

	return strconv.Atoi(id)
}
