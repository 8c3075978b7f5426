package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rangbot-io/rangbotgo/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Subject kinds carried in the "kind" claim
const (
	SubjectStaff  = "staff"
	SubjectMember = "member"
	SubjectForum  = "forum"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateStaffToken issues an access token for an admin/CS account
func GenerateStaffToken(staff *models.StaffUser, secret string) (string, error) {
	claims := jwt.MapClaims{
		"kind": SubjectStaff,
		"id":   staff.ID,
		"role": string(staff.Role),
		"name": staff.FullName,
		"exp":  time.Now().Add(time.Hour * 8).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateMemberToken issues an access token for a registered member
func GenerateMemberToken(member *models.Member, secret string) (string, error) {
	claims := jwt.MapClaims{
		"kind":     SubjectMember,
		"id":       member.ID,
		"memberId": member.MemberID,
		"name":     member.FullName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateForumToken issues a lightweight token for a forum participant
func GenerateForumToken(user *models.ForumUser, secret string) (string, error) {
	claims := jwt.MapClaims{
		"kind": SubjectForum,
		"id":   user.ID,
		"name": user.Name,
		"exp":  time.Now().Add(time.Hour * 24 * 7).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token
func ValidateToken(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ClaimID extracts the numeric "id" claim (JSON numbers decode as float64)
func ClaimID(claims jwt.MapClaims) (uint, bool) {
	raw, ok := claims["id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(raw), true
}
