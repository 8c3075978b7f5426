package utils

import (
	"testing"

	"github.com/rangbot-io/rangbotgo/internal/models"
)

func TestPasswordHashing(t *testing.T) {
	password := "secret123"

	// Test Hashing
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == password {
		t.Error("Hash should not match plaintext password")
	}
	if len(hash) == 0 {
		t.Error("Hash should not be empty")
	}

	// Test Comparison (Success)
	if !CheckPasswordHash(password, hash) {
		t.Error("Password should match hash")
	}

	// Test Comparison (Failure)
	if CheckPasswordHash("wrongpassword", hash) {
		t.Error("Wrong password should not match hash")
	}
}

func TestStaffJWT(t *testing.T) {
	secret := "test-secret-key-12345"

	staff := &models.StaffUser{
		ID:       7,
		Username: "admin",
		Email:    "admin@rangbot.io",
		FullName: "Admin User",
		Role:     models.StaffRoleAdmin,
	}

	token, err := GenerateStaffToken(staff, secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Error("Token should not be empty")
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims["kind"] != SubjectStaff {
		t.Errorf("Expected kind %q, got %v", SubjectStaff, claims["kind"])
	}
	if claims["role"] != string(models.StaffRoleAdmin) {
		t.Errorf("Expected role admin, got %v", claims["role"])
	}
	if id, ok := ClaimID(claims); !ok || id != staff.ID {
		t.Errorf("Expected id %d, got %v", staff.ID, claims["id"])
	}

	// Validation with the wrong key must fail
	if _, err := ValidateToken(token, "wrong-key"); err == nil {
		t.Error("Validation should fail with wrong key")
	}
}

func TestMemberJWT(t *testing.T) {
	secret := "test-secret-key-12345"

	member := &models.Member{
		ID:       3,
		MemberID: "MBR-2025-00001",
		FullName: "Budi Santoso",
	}

	token, err := GenerateMemberToken(member, secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims["kind"] != SubjectMember {
		t.Errorf("Expected kind %q, got %v", SubjectMember, claims["kind"])
	}
	if claims["memberId"] != member.MemberID {
		t.Errorf("Expected memberId %q, got %v", member.MemberID, claims["memberId"])
	}
}
