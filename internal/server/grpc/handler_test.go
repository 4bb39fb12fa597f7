package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/fitcal/internal/common"
	"github.com/dmitrijs2005/fitcal/internal/logging"
	"github.com/dmitrijs2005/fitcal/internal/rpc"
	"github.com/dmitrijs2005/fitcal/internal/server/models"
	"github.com/dmitrijs2005/fitcal/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeUser struct {
	refreshResp *services.TokenPair
	refreshErr  error

	regResp        *models.User
	regErr         error
	registerCalled bool

	saltResp []byte
	saltErr  error

	loginResp *services.TokenPair
	loginErr  error
}

func (f *fakeUser) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}
func (f *fakeUser) Register(context.Context, string, []byte, []byte) (*models.User, error) {
	f.registerCalled = true
	return f.regResp, f.regErr
}
func (f *fakeUser) GetSalt(context.Context, string) ([]byte, error) {
	return f.saltResp, f.saltErr
}
func (f *fakeUser) Login(context.Context, string, []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

type fakeBackup struct {
	pushOut *models.Backup
	pushErr error

	pullOut  *models.Backup
	pullData []byte
	pullErr  error

	lastUserID string
	lastBase   int64
}

func (f *fakeBackup) Push(_ context.Context, userID string, base int64, _, _ []byte, _ int) (*models.Backup, error) {
	f.lastUserID = userID
	f.lastBase = base
	return f.pushOut, f.pushErr
}
func (f *fakeBackup) Pull(_ context.Context, userID string) (*models.Backup, []byte, error) {
	f.lastUserID = userID
	return f.pullOut, f.pullData, f.pullErr
}

// ---- helpers ----

func newServer(u userSvc, b backupSvc) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), u, b, "k")
}

func tokens(a, r string) *services.TokenPair {
	return &services.TokenPair{AccessToken: a, RefreshToken: r}
}

func authed(userID string) context.Context {
	return context.WithValue(context.Background(), userIDKey, userID)
}

// ---- tests ----

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeBackup{})
	resp, err := s.Ping(context.Background(), &rpc.PingRequest{})
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("unexpected status: %q", resp.Status)
	}
}

func TestRefreshToken_OK(t *testing.T) {
	s := newServer(&fakeUser{refreshResp: tokens("a", "r")}, &fakeBackup{})
	resp, err := s.RefreshToken(context.Background(), &rpc.RefreshTokenRequest{RefreshToken: "r0"})
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if resp.AccessToken != "a" || resp.RefreshToken != "r" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestRefreshToken_Errors(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
		msg  string
	}{
		{errors.New("oops"), codes.Internal, "internal error"},
		{common.ErrorUnauthorized, codes.Unauthenticated, "unauthorized"},
		{common.ErrRefreshTokenExpired, codes.Unauthenticated, common.ErrRefreshTokenExpired.Error()},
	}
	for _, tc := range cases {
		s := newServer(&fakeUser{refreshErr: tc.err}, &fakeBackup{})
		_, err := s.RefreshToken(context.Background(), &rpc.RefreshTokenRequest{RefreshToken: "r0"})
		st, _ := status.FromError(err)
		if st.Code() != tc.code || st.Message() != tc.msg {
			t.Fatalf("%v: got %v %q", tc.err, st.Code(), st.Message())
		}
	}
}

func TestRegister_OK(t *testing.T) {
	s := newServer(&fakeUser{regResp: &models.User{ID: "42"}}, &fakeBackup{})
	resp, err := s.Register(context.Background(), &rpc.RegisterRequest{Username: "a@fitcal.app"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if resp.UserID != "42" {
		t.Fatalf("unexpected id: %q", resp.UserID)
	}
}

func TestRegister_Errors(t *testing.T) {
	s := newServer(&fakeUser{regErr: fmt.Errorf("error creating user: %w", common.ErrorAlreadyExists)}, &fakeBackup{})
	_, err := s.Register(context.Background(), &rpc.RegisterRequest{Username: "a@fitcal.app"})
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("want AlreadyExists, got %v", status.Code(err))
	}

	s = newServer(&fakeUser{regErr: errors.New("db down")}, &fakeBackup{})
	_, err = s.Register(context.Background(), &rpc.RegisterRequest{Username: "a@fitcal.app"})
	st, _ := status.FromError(err)
	if st.Code() != codes.Internal || st.Message() != "internal error" {
		t.Fatalf("internal details must not leak: %v %q", st.Code(), st.Message())
	}
}

func TestGetSalt(t *testing.T) {
	s := newServer(&fakeUser{saltResp: []byte("SALT")}, &fakeBackup{})
	resp, err := s.GetSalt(context.Background(), &rpc.GetSaltRequest{Username: "a"})
	if err != nil || string(resp.Salt) != "SALT" {
		t.Fatalf("GetSalt: %v %v", resp, err)
	}

	s = newServer(&fakeUser{saltErr: common.ErrorInternal}, &fakeBackup{})
	if _, err := s.GetSalt(context.Background(), &rpc.GetSaltRequest{Username: "a"}); status.Code(err) != codes.Internal {
		t.Fatalf("want Internal, got %v", status.Code(err))
	}
}

func TestLogin_OKUnauthorizedAndInternal(t *testing.T) {
	s := newServer(&fakeUser{loginResp: tokens("a", "r")}, &fakeBackup{})
	resp, err := s.Login(context.Background(), &rpc.LoginRequest{Username: "a", Verifier: []byte("v")})
	if err != nil || resp.AccessToken != "a" {
		t.Fatalf("Login: %v %v", resp, err)
	}

	s = newServer(&fakeUser{loginErr: common.ErrorUnauthorized}, &fakeBackup{})
	if _, err := s.Login(context.Background(), &rpc.LoginRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("want Unauthenticated, got %v", status.Code(err))
	}

	s = newServer(&fakeUser{loginErr: common.ErrorInternal}, &fakeBackup{})
	if _, err := s.Login(context.Background(), &rpc.LoginRequest{}); status.Code(err) != codes.Internal {
		t.Fatalf("want Internal, got %v", status.Code(err))
	}
}

func TestPushBackup(t *testing.T) {
	created := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	b := &fakeBackup{pushOut: &models.Backup{Version: 6, CreatedAt: created}}
	s := newServer(&fakeUser{}, b)

	resp, err := s.PushBackup(authed("u1"), &rpc.PushBackupRequest{BaseVersion: 5, Ciphertext: []byte("c"), Nonce: []byte("n")})
	if err != nil {
		t.Fatalf("PushBackup error: %v", err)
	}
	if resp.Version != 6 || !resp.CreatedAt.Equal(created) {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if b.lastUserID != "u1" || b.lastBase != 5 {
		t.Fatalf("service got %q/%d", b.lastUserID, b.lastBase)
	}
}

func TestPushBackup_Errors(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeBackup{})
	if _, err := s.PushBackup(context.Background(), &rpc.PushBackupRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("missing user: want Unauthenticated, got %v", status.Code(err))
	}

	cases := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: server is at 3", common.ErrVersionConflict), codes.Aborted},
		{fmt.Errorf("%w: too big", common.ErrorValidation), codes.InvalidArgument},
		{errors.New("s3 down"), codes.Internal},
	}
	for _, tc := range cases {
		s := newServer(&fakeUser{}, &fakeBackup{pushErr: tc.err})
		_, err := s.PushBackup(authed("u1"), &rpc.PushBackupRequest{})
		if status.Code(err) != tc.code {
			t.Fatalf("%v: want %v, got %v", tc.err, tc.code, status.Code(err))
		}
	}
}

func TestPullBackup(t *testing.T) {
	b := &fakeBackup{
		pullOut:  &models.Backup{Version: 2, Nonce: []byte("n"), EntryCount: 3},
		pullData: []byte("cipher"),
	}
	s := newServer(&fakeUser{}, b)

	resp, err := s.PullBackup(authed("u1"), &rpc.PullBackupRequest{})
	if err != nil {
		t.Fatalf("PullBackup error: %v", err)
	}
	if resp.Version != 2 || string(resp.Ciphertext) != "cipher" || string(resp.Nonce) != "n" || resp.EntryCount != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	s = newServer(&fakeUser{}, &fakeBackup{pullErr: common.ErrorNotFound})
	if _, err := s.PullBackup(authed("u1"), &rpc.PullBackupRequest{}); status.Code(err) != codes.NotFound {
		t.Fatalf("want NotFound, got %v", status.Code(err))
	}

	if _, err := s.PullBackup(context.Background(), &rpc.PullBackupRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("want Unauthenticated, got %v", status.Code(err))
	}
}
