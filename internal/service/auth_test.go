package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkirsanov/inventorypro/internal/hash"
	"github.com/dkirsanov/inventorypro/internal/models"
	"github.com/dkirsanov/inventorypro/internal/transport"
)

func registerReq(username string) transport.RegisterRequest {
	return transport.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "password1",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password1", user.PasswordHash)
	assert.True(t, hash.CheckPassword(user.PasswordHash, "password1"))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, registerReq("bob"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("bob"))
	assert.ErrorIs(t, err, ErrUserExists)

	// The first record is unaffected.
	stored, err := svc.Repo.GetUserByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.Username)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{"short username", transport.RegisterRequest{Email: "a@b.com", Username: "a", Password: "password1"}},
		{"bad email", transport.RegisterRequest{Email: "not-an-email", Username: "carol", Password: "password1"}},
		{"short password", transport.RegisterRequest{Email: "c@b.com", Username: "carol", Password: "pw1"}},
		{"no digit", transport.RegisterRequest{Email: "c@b.com", Username: "carol", Password: "passwords"}},
		{"no letter", transport.RegisterRequest{Email: "c@b.com", Username: "carol", Password: "12345678"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("dave"))
	require.NoError(t, err)

	res, err := svc.Login(ctx, "dave", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "bearer", res.TokenType)
}

func TestAuthService_Login_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("erin"))
	require.NoError(t, err)

	_, errWrongPw := svc.Login(ctx, "erin", "not-the-password1")
	_, errUnknown := svc.Login(ctx, "nobody", "password1")

	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPw.Error(), errUnknown.Error())
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("frank"))
	require.NoError(t, err)

	require.NoError(t, svc.Repo.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("is_active", false).Error)

	_, err = svc.Login(ctx, "frank", "password1")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestAuthService_Profile_WithAddressAndOrders(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("grace"))
	require.NoError(t, err)

	_, err = svc.UpsertAddress(ctx, user.ID, transport.AddressRequest{
		Street: "1 Main St", City: "Springfield", ZipCode: "12345",
	})
	require.NoError(t, err)

	orderSvc := &OrderService{Repo: svc.Repo}
	p := seedProduct(t, svc.Repo, "widget", 9.5, 3, "tools")
	_, err = orderSvc.CreateOrder(ctx, user.ID, []uint{p.ID})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace", profile.Username)
	require.NotNil(t, profile.Address)
	assert.Equal(t, "Springfield", profile.Address.City)
	require.Len(t, profile.Orders, 1)
	assert.Equal(t, models.OrderStatusProcessing, profile.Orders[0].Status)
}

func TestAuthService_UpsertAddress_OverwritesInPlace(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "heidi")

	first, err := svc.UpsertAddress(ctx, user.ID, transport.AddressRequest{
		Street: "1 Old Rd", City: "Oldtown", ZipCode: "00000",
	})
	require.NoError(t, err)

	second, err := svc.UpsertAddress(ctx, user.ID, transport.AddressRequest{
		Street: "2 New Ave", City: "Newtown", ZipCode: "99999",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Newtown", second.City)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Address{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
