// file: internals/features/users/user/service/user_service.go
package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"prestasiku_backend/internals/configs"
	m "prestasiku_backend/internals/features/users/user/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid account or password")
	ErrAccountDisabled    = errors.New("account disabled")
)

const tokenTTL = 12 * time.Hour

// HashPassword hashes with bcrypt; new accounts always get bcrypt hashes.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword accepts bcrypt hashes plus the legacy SHA-256 hex format
// still present in migrated rows.
func CheckPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	if strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	if len(hash) == 64 {
		sum := sha256.Sum256([]byte(plain))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) == 1
	}
	return false
}

// DefaultPassword for admin-imported accounts: last 6 chars of the account id.
func DefaultPassword(accountID string) string {
	if len(accountID) <= 6 {
		return accountID
	}
	return accountID[len(accountID)-6:]
}

// Authenticate verifies credentials against active accounts only.
func Authenticate(db *gorm.DB, accountID, password string) (*m.UserModel, error) {
	var user m.UserModel
	err := db.Where("user_account_id = ?", accountID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.UserIsActive {
		return nil, ErrAccountDisabled
	}
	if !CheckPassword(user.UserPasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueAccessToken signs the claims the auth middleware expects.
func IssueAccessToken(user *m.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("missing JWT secret")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.UserID.String(),
		"account_id": user.UserAccountID,
		"name":       user.UserName,
		"role":       user.UserRole,
		"department": user.UserDepartment,
		"iat":        now.Unix(),
		"exp":        now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
