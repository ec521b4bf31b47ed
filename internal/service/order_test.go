package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkirsanov/inventorypro/internal/models"
)

func TestOrderService_CreateOrder_SumsCurrentPrices(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "ivan")
	p1 := seedProduct(t, r, "keyboard", 10.0, 5, "hardware")
	p2 := seedProduct(t, r, "mouse", 4.5, 5, "hardware")

	summary, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.NotZero(t, summary.OrderID)
	assert.InDelta(t, 14.5, summary.Total, 1e-9)

	order, err := r.GetOrderForUser(ctx, summary.OrderID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.InDelta(t, 14.5, order.TotalPrice, 1e-9)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestOrderService_CreateOrder_DuplicatesDoubleCount(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "judy")
	p1 := seedProduct(t, r, "cable", 10.0, 5, "hardware")

	summary, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID, p1.ID})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, summary.Total, 1e-9)
}

func TestOrderService_CreateOrder_UnresolvedIDsAreSkipped(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "kate")
	p1 := seedProduct(t, r, "monitor", 100.0, 2, "hardware")

	summary, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID, 9999})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, summary.Total, 1e-9)
}

func TestOrderService_CreateOrder_NoValidProducts(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "leo")

	_, err := svc.CreateOrder(ctx, user.ID, []uint{})
	assert.ErrorIs(t, err, ErrNoValidProducts)

	_, err = svc.CreateOrder(ctx, user.ID, []uint{12345})
	assert.ErrorIs(t, err, ErrNoValidProducts)

	// Nothing was persisted on either failure.
	var count int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestOrderService_CreateOrder_DoesNotDecrementStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "mallory")
	p1 := seedProduct(t, r, "headset", 25.0, 4, "hardware")

	_, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID})
	require.NoError(t, err)

	stored, err := r.GetProduct(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Stock)
}

func TestOrderService_CancelOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "nina")
	p1 := seedProduct(t, r, "desk", 80.0, 1, "furniture")
	summary, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID})
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(ctx, summary.OrderID, user.ID))

	order, err := r.GetOrderForUser(ctx, summary.OrderID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	// A second cancel is an invalid transition.
	err = svc.CancelOrder(ctx, summary.OrderID, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestOrderService_CancelOrder_OtherUsersOrderLooksNonexistent(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	owner := seedUser(t, r, "oscar")
	other := seedUser(t, r, "peggy")
	p1 := seedProduct(t, r, "chair", 40.0, 2, "furniture")
	summary, err := svc.CreateOrder(ctx, owner.ID, []uint{p1.ID})
	require.NoError(t, err)

	errForeign := svc.CancelOrder(ctx, summary.OrderID, other.ID)
	errMissing := svc.CancelOrder(ctx, 424242, other.ID)

	assert.ErrorIs(t, errForeign, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)

	// And the owner's order is untouched.
	order, err := r.GetOrderForUser(ctx, summary.OrderID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
}

func TestOrderService_CancelOrder_ShippedIsTerminal(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "quentin")
	p1 := seedProduct(t, r, "lamp", 15.0, 3, "furniture")
	summary, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID})
	require.NoError(t, err)

	require.NoError(t, r.UpdateOrderStatus(ctx, summary.OrderID, models.OrderStatusShipped))

	err = svc.CancelOrder(ctx, summary.OrderID, user.ID)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestOrderService_ListOrders_NewestFirst(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "rosa")
	p1 := seedProduct(t, r, "shelf", 30.0, 2, "furniture")

	first, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID})
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, user.ID, []uint{p1.ID, p1.ID})
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.ElementsMatch(t,
		[]uint{first.OrderID, second.OrderID},
		[]uint{orders[0].ID, orders[1].ID},
	)
	assert.False(t, orders[0].CreatedAt.Before(orders[1].CreatedAt))
}
