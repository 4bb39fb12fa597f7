package rpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeServer struct {
	UnimplementedFitCalServer
	lastPush *PushBackupRequest
}

func (f *fakeServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (f *fakeServer) PushBackup(_ context.Context, in *PushBackupRequest) (*PushBackupResponse, error) {
	f.lastPush = in
	return &PushBackupResponse{Version: in.BaseVersion + 1, CreatedAt: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)}, nil
}

func startServer(t *testing.T, srv FitCalServer, opts ...grpc.ServerOption) FitCalClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	s := grpc.NewServer(opts...)
	RegisterFitCalServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewFitCalClient(conn)
}

func TestRoundTrip(t *testing.T) {
	fake := &fakeServer{}
	c := startServer(t, fake)
	ctx := context.Background()

	pong, err := c.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	resp, err := c.PushBackup(ctx, &PushBackupRequest{BaseVersion: 4, Ciphertext: []byte{1, 2, 3}, Nonce: []byte{9}, EntryCount: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Version)
	assert.True(t, resp.CreatedAt.Equal(time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)))

	require.NotNil(t, fake.lastPush)
	assert.Equal(t, []byte{1, 2, 3}, fake.lastPush.Ciphertext)
	assert.Equal(t, 2, fake.lastPush.EntryCount)
}

func TestUnimplemented(t *testing.T) {
	c := startServer(t, &fakeServer{})

	_, err := c.PullBackup(context.Background(), &PullBackupRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestInterceptorSeesFullMethod(t *testing.T) {
	var seen []string
	icpt := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
		seen = append(seen, info.FullMethod)
		return h(ctx, req)
	}
	c := startServer(t, &fakeServer{}, grpc.UnaryInterceptor(icpt))

	_, err := c.Ping(context.Background(), &PingRequest{})
	require.NoError(t, err)
	_, err = c.PushBackup(context.Background(), &PushBackupRequest{Ciphertext: []byte{1}, Nonce: []byte{1}})
	require.NoError(t, err)

	assert.Equal(t, []string{MethodPing, MethodPushBackup}, seen)
}

func TestCodec(t *testing.T) {
	c := jsonCodec{}
	assert.Equal(t, "json", c.Name())

	b, err := c.Marshal(&LoginResponse{AccessToken: "a", RefreshToken: "r"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"a","refresh_token":"r"}`, string(b))

	var out LoginResponse
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, "r", out.RefreshToken)
}
