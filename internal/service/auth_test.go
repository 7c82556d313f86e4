package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/nzwalks/internal/config"
	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/lib/token"
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Tramp1ng!"

type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) EnqueueWelcomeEmail(_ context.Context, to string) error {
	n.sent = append(n.sent, to)
	return n.err
}

func newAuthService(t *testing.T, notifier service.WelcomeNotifier) (*service.AuthService, *token.Manager) {
	t.Helper()
	repos, _ := newRepos(t)

	cfg := &config.AuthConfig{
		SecretKey:  "test-secret-key-that-is-32-bytes!",
		Issuer:     "nzwalks",
		Audience:   "nzwalks-clients",
		BcryptCost: bcrypt.MinCost,
	}
	tokens := token.NewManager(cfg)
	logger := zerolog.Nop()

	svc, err := service.NewAuthService(repos, tokens, cfg, notifier, &logger)
	require.NoError(t, err)
	return svc, tokens
}

func TestRegisterThenLogin(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, tokens := newAuthService(t, notifier)
	ctx := context.Background()

	err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "Hiker@Example.com",
		Password: strongPassword,
		Roles:    []string{model.RoleWriter, model.RoleReader, model.RoleWriter},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hiker@Example.com"}, notifier.sent)

	accessToken, err := svc.Login(ctx, &dto.LoginRequest{Username: "hiker@example.com", Password: strongPassword})
	require.NoError(t, err)

	claims, err := tokens.Parse(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "Hiker@Example.com", claims.Email)
	assert.ElementsMatch(t, []string{model.RoleReader, model.RoleWriter}, claims.Roles)
	assert.NotEmpty(t, claims.Subject)
}

func TestRegisterWithoutRoles(t *testing.T) {
	svc, tokens := newAuthService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Username: "solo@example.com", Password: strongPassword}))

	accessToken, err := svc.Login(ctx, &dto.LoginRequest{Username: "solo@example.com", Password: strongPassword})
	require.NoError(t, err)
	claims, err := tokens.Parse(accessToken)
	require.NoError(t, err)
	assert.Empty(t, claims.Roles)
}

func TestRegisterAggregatesPasswordAndDuplicateErrors(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Username: "taken@example.com", Password: strongPassword}))

	err := svc.Register(ctx, &dto.RegisterRequest{Username: "TAKEN@example.com", Password: "abc"})
	httpErr := asHTTPError(t, err)

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, service.RegistrationFailedMessage, httpErr.Message)
	assert.Len(t, fieldMessages(httpErr, "password"), 4)
	assert.Equal(t, []string{"Username 'TAKEN@example.com' is already taken."}, fieldMessages(httpErr, "username"))
}

func TestRegisterSurvivesNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("redis down")}
	svc, _ := newAuthService(t, notifier)

	err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "mail@example.com", Password: strongPassword})
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 1)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Username: "known@example.com", Password: strongPassword}))

	for _, req := range []*dto.LoginRequest{
		{Username: "known@example.com", Password: "Wrong1!pass"},
		{Username: "unknown@example.com", Password: strongPassword},
	} {
		_, err := svc.Login(ctx, req)
		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, errs.CodeInvalidLogin, httpErr.Code)
		assert.Equal(t, service.InvalidLoginMessage, httpErr.Message)
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{strongPassword, 0},
		{"Ab1!", 1},
		{"abcdef1!", 1},
		{"ABCDEF1!", 1},
		{"Abcdefg!", 1},
		{"Abcdef12", 1},
		{"", 5},
		{"Aa1!" + string(make([]byte, 70)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Len(t, service.CheckPassword(tt.password), tt.want)
		})
	}
}
