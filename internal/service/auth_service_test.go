package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/testutil"
	"skillpath_backend/internal/util"
)

const testSecret = "test-secret-with-at-least-32-characters"

func newAuthService(t *testing.T) (*AuthService, *fixture) {
	t.Helper()
	f := newFixture(t)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour, RefreshExpireTime: 24 * time.Hour}}
	return NewAuthService(repository.NewUserRepository(f.db), f.employees, cfg), f
}

func TestRegister(t *testing.T) {
	svc, f := newAuthService(t)
	e := testutil.CreateEmployee(t, f.db, "Ana", "Data Analyst", "SQL")
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "ana", Password: "secret1", Email: "ana@corp.io", EmployeeID: &e.ID})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleEmployee || user.EmployeeID == nil || *user.EmployeeID != e.ID {
		t.Errorf("user = %+v", user)
	}
	if user.Password == "secret1" {
		t.Error("password stored in clear text")
	}

	missing := uint(404)
	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"duplicate username", RegisterInput{Username: "ana", Password: "secret1", Email: "x@corp.io"}, util.ErrUsernameTaken},
		{"duplicate email", RegisterInput{Username: "ana2", Password: "secret1", Email: "ana@corp.io"}, util.ErrEmailRegistered},
		{"bad role", RegisterInput{Username: "bob", Password: "secret1", Email: "bob@corp.io", Role: "root"}, util.ErrInvalidRole},
		{"unknown employee", RegisterInput{Username: "bob", Password: "secret1", Email: "bob@corp.io", EmployeeID: &missing}, util.ErrInvalidEmployeeLink},
		{"employee already linked", RegisterInput{Username: "bob", Password: "secret1", Email: "bob@corp.io", EmployeeID: &e.ID}, util.ErrEmployeeLinked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	admin, err := svc.Register(ctx, RegisterInput{Username: "root", Password: "secret1", Email: "root@corp.io", Role: "ADMIN", EmployeeID: &e.ID})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if admin.Role != model.RoleAdmin || admin.EmployeeID != nil {
		t.Errorf("admin = %+v, want no employee link", admin)
	}
}

func TestLoginRefreshMe(t *testing.T) {
	svc, f := newAuthService(t)
	e := testutil.CreateEmployee(t, f.db, "Ana", "Data Analyst", "SQL")
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Username: "ana", Password: "secret1", Email: "ana@corp.io", EmployeeID: &e.ID}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "ana", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "secret1"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", err)
	}

	res, err := svc.Login(ctx, "ana", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := util.ParseJWT(res.Access, testSecret, util.TokenTypeAccess)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.EmployeeID == nil || *claims.EmployeeID != e.ID {
		t.Errorf("claims employee = %v", claims.EmployeeID)
	}

	if _, err := svc.Refresh(ctx, res.Access); !errors.Is(err, util.ErrInvalidToken) {
		t.Errorf("refresh with access token err = %v", err)
	}
	access, err := svc.Refresh(ctx, res.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := util.ParseJWT(access, testSecret, util.TokenTypeAccess); err != nil {
		t.Errorf("refreshed token invalid: %v", err)
	}

	me, err := svc.Me(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.EmployeeName == nil || *me.EmployeeName != "Ana" {
		t.Errorf("me = %+v", me)
	}
}
