package util

import (
	"errors"
	"testing"
	"time"

	"skillpath_backend/internal/model"
)

const testSecret = "test-secret-test-secret-test-secret"

func TestTokenPairRoundTrip(t *testing.T) {
	empID := uint(42)
	user := &model.User{Username: "jane", Role: model.RoleEmployee, EmployeeID: &empID}
	user.ID = 7

	pair, err := GenerateTokenPair(user, testSecret, time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	claims, err := ParseJWT(pair.Access, testSecret, TokenTypeAccess)
	if err != nil {
		t.Fatalf("ParseJWT(access): %v", err)
	}
	if claims.UserID != 7 || claims.Role != model.RoleEmployee || claims.EmployeeID == nil || *claims.EmployeeID != 42 {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("missing jti")
	}

	if _, err := ParseJWT(pair.Refresh, testSecret, TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access: %v", err)
	}
	if _, err := ParseJWT(pair.Refresh, testSecret, TokenTypeRefresh); err != nil {
		t.Errorf("ParseJWT(refresh): %v", err)
	}
}

func TestParseJWTRejects(t *testing.T) {
	user := &model.User{Username: "admin", Role: model.RoleAdmin}
	expired, _ := GenerateJWT(user, testSecret, TokenTypeAccess, -time.Minute)
	valid, _ := GenerateJWT(user, testSecret, TokenTypeAccess, time.Hour)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"expired", expired, testSecret},
		{"wrong secret", valid, "another-secret-another-secret-xx"},
		{"garbage", "not.a.token", testSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJWT(tt.token, tt.secret, TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}
