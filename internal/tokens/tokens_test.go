package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/gogotex/bridges/internal/identity"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAccessToken_ValidAndClaims(t *testing.T) {
	secret := "test-secret-32-bytes-should-be-long-enough"
	who := &identity.Identity{ID: "user-123", Type: "admin", DisplayName: "Test User"}
	tokenStr, err := GenerateAccessToken(secret, who, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type assertion failed")
	}
	if claims["sub"] != who.ID || claims["type"] != "admin" || claims["name"] != "Test User" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	who2 := identity.FromClaims(claims)
	if *who2 != *who {
		t.Fatalf("identity round trip: got=%+v want=%+v", who2, who)
	}
}

func TestGenerateAccessToken_Expired(t *testing.T) {
	secret := "another-secret-32-bytes-longgggg"
	tokenStr, err := GenerateAccessToken(secret, &identity.Identity{ID: "u2"}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	_, err = jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	if err == nil {
		t.Fatalf("expected token parse to fail after expiry")
	}
}

func TestGenerateAccessToken_RequiresSecretAndSubject(t *testing.T) {
	if _, err := GenerateAccessToken("", &identity.Identity{ID: "u"}, time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := GenerateAccessToken("s", &identity.Identity{}, time.Minute); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

// Tampering with payload must fail signature verification
func TestParseToken_TamperedPayload(t *testing.T) {
	secret := "tamper-test-secret-32-bytes-xxxxxxx"
	tokenStr, err := GenerateAccessToken(secret, &identity.Identity{ID: "user-t"}, 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	payloadStr := strings.Replace(string(payloadBytes), "user-t", "attacker", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payloadStr))
	tampered := strings.Join(parts, ".")
	_, err = jwt.Parse(tampered, func(token *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	if err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
