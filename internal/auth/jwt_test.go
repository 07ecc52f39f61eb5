package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	maker := NewJWTMaker("test-secret")

	token, claims, err := maker.GenerateToken("user-1", "jordan@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if claims.SessionID == "" {
		t.Error("session id not set on issued claims")
	}

	parsed, err := maker.VerifyToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.UserID != "user-1" {
		t.Errorf("user id = %q, want %q", parsed.UserID, "user-1")
	}
	if parsed.Email != "jordan@example.com" {
		t.Errorf("email = %q, want %q", parsed.Email, "jordan@example.com")
	}
	if parsed.SessionID != claims.SessionID {
		t.Errorf("session id = %q, want %q", parsed.SessionID, claims.SessionID)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test-secret")

	token, _, err := maker.GenerateToken("user-1", "jordan@example.com", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := maker.VerifyToken(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTMaker("secret-a").GenerateToken("user-1", "jordan@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTMaker("secret-b").VerifyToken(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyToken_RejectsNonHMAC(t *testing.T) {
	// alg "none" style forgeries must be rejected by the method check
	claims, err := NewUserClaims("user-1", "jordan@example.com", time.Hour, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewJWTMaker("test-secret").VerifyToken(signed); err == nil {
		t.Fatal("unsigned token must not verify")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	maker := NewJWTMaker("test-secret")
	_, first, err := maker.GenerateToken("user-1", "jordan@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := maker.GenerateToken("user-1", "jordan@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if first.SessionID == second.SessionID {
		t.Error("each issued token must carry a fresh session id")
	}
}
