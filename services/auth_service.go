package services

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/config"
	"lms/models"
)

// AuthService owns credentials and sessions. Tokens handed to clients
// are JWTs carrying a server-side session id, so logout can revoke
// them before their signature expires.
type AuthService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{DB: db, Cfg: cfg}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register creates a user with a bcrypt-hashed credential. The
// plaintext password is never stored.
func (as *AuthService) Register(username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return 0, ErrInvalidInput
	}

	var existing models.User
	err := as.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return 0, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := as.DB.Create(&user).Error; err != nil {
		// Two registrations can race past the pre-check; the unique
		// index on username catches the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}

	return user.ID, nil
}

// Authenticate verifies a username/password pair. Unknown usernames
// and wrong passwords fail identically so callers cannot enumerate
// accounts.
func (as *AuthService) Authenticate(username, password string) (uint, error) {
	username = strings.TrimSpace(username)

	var user models.User
	if err := as.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, ErrInvalidCredentials
	}

	return user.ID, nil
}

// StartSession binds a new session to the user and returns its token.
func (as *AuthService) StartSession(userID uint) (string, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(as.Cfg.SessionTTLHours) * time.Hour),
	}
	if err := as.DB.Create(&session).Error; err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sid":     session.ID,
		"user_id": userID,
		"exp":     session.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.Cfg.JWTSecret))
}

// ResolveSession returns the user id bound to an active session, or
// ErrNotAuthenticated for invalid, revoked and expired tokens.
func (as *AuthService) ResolveSession(token string) (uint, error) {
	sid, err := as.parseSessionID(token)
	if err != nil {
		return 0, ErrNotAuthenticated
	}

	var session models.Session
	if err := as.DB.First(&session, "id = ?", sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotAuthenticated
		}
		return 0, err
	}

	if time.Now().After(session.ExpiresAt) {
		return 0, ErrNotAuthenticated
	}

	return session.UserID, nil
}

// EndSession revokes the session behind the token. Ending an unknown
// or already-ended session is not an error.
func (as *AuthService) EndSession(token string) error {
	sid, err := as.parseSessionID(token)
	if err != nil {
		return nil
	}
	return as.DB.Delete(&models.Session{}, "id = ?", sid).Error
}

func (as *AuthService) parseSessionID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(as.Cfg.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("missing session id")
	}
	return sid, nil
}
