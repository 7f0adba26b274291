package store

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ChukaCSTD/Macys-Clone/internal/domain"
	"github.com/ChukaCSTD/Macys-Clone/internal/storage"
	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
	"github.com/ChukaCSTD/Macys-Clone/pkg/logger"
)

type mockCartAPI struct {
	mock.Mock
}

func (m *mockCartAPI) GetCart(ctx context.Context, userID, token string) ([]domain.CartLine, error) {
	args := m.Called(ctx, userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *mockCartAPI) AddCartItem(ctx context.Context, userID, token string, line domain.CartLine) error {
	args := m.Called(ctx, userID, token, line)
	return args.Error(0)
}

func (m *mockCartAPI) UpdateCartQuantity(ctx context.Context, userID, token, productID string, quantity int) error {
	args := m.Called(ctx, userID, token, productID, quantity)
	return args.Error(0)
}

func (m *mockCartAPI) RemoveCartItem(ctx context.Context, userID, token, productID string) error {
	args := m.Called(ctx, userID, token, productID)
	return args.Error(0)
}

func newTestCart(t *testing.T) (*Cart, *Session, *mockCartAPI) {
	t.Helper()
	session := NewSession(storage.NewMemory(), newTestLogger())
	api := new(mockCartAPI)
	return NewCart(api, session, newTestLogger()), session, api
}

func establishShopper(t *testing.T, session *Session) {
	t.Helper()
	err := session.Establish(context.Background(), domain.Session{
		PrincipalID: "u-1",
		Token:       "tok",
		Kind:        domain.KindShopper,
	})
	require.NoError(t, err)
}

func TestCartFetch_ReplacesLocalState(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	remote := []domain.CartLine{{ProductID: "p-1", Quantity: 2}}
	api.On("GetCart", ctx, "u-1", "tok").Return(remote, nil)

	require.NoError(t, cart.Fetch(ctx))
	assert.Equal(t, remote, cart.Lines())

	api.AssertExpectations(t)
}

func TestCartFetch_NoSessionIsNoOp(t *testing.T) {
	cart, _, api := newTestCart(t)

	require.NoError(t, cart.Fetch(context.Background()))
	assert.Empty(t, cart.Lines())
	api.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartFetch_FailureLeavesStateUnchanged(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1"}))

	api.On("GetCart", ctx, "u-1", "tok").Return(nil, apperrors.RemoteUnavailable("api down"))

	err := cart.Fetch(ctx)
	assert.Error(t, err)
	assert.Len(t, cart.Lines(), 1, "failed fetch must not clobber local state")
}

func TestCartAddItem_MergesByProductAndSize(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)

	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1", SelectedSize: "M"}))
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1", SelectedSize: "M"}))
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1", SelectedSize: "L"}))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "M", lines[0].SelectedSize)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "L", lines[1].SelectedSize)
}

func TestCartAddItem_RollsBackOnRemoteFailure(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(apperrors.RemoteUnavailable("api down"))

	err := cart.AddItem(ctx, domain.CartLine{ProductID: "p-1"})
	assert.Error(t, err)
	assert.Empty(t, cart.Lines(), "failed add must roll the optimistic line back")
}

func TestCartAddItem_NoSessionIsNoOp(t *testing.T) {
	cart, _, api := newTestCart(t)

	require.NoError(t, cart.AddItem(context.Background(), domain.CartLine{ProductID: "p-1"}))
	assert.Empty(t, cart.Lines())
	api.AssertNotCalled(t, "AddCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartAddItem_InvalidInput(t *testing.T) {
	cart, session, _ := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	assert.Error(t, cart.AddItem(ctx, domain.CartLine{}))
	assert.Error(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1", Quantity: -1}))
}

func TestCartRemoveItem(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1"}))

	api.On("RemoveCartItem", ctx, "u-1", "tok", "p-1").Return(nil)
	require.NoError(t, cart.RemoveItem(ctx, "p-1"))
	assert.Empty(t, cart.Lines())
}

func TestCartRemoveItem_RollsBackOnRemoteFailure(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1"}))

	api.On("RemoveCartItem", ctx, "u-1", "tok", "p-1").Return(apperrors.RemoteUnavailable("api down"))

	err := cart.RemoveItem(ctx, "p-1")
	assert.Error(t, err)
	assert.Len(t, cart.Lines(), 1, "failed remove must restore the line")
}

func TestCartRemoveItem_AbsentLineSkipsRemote(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)

	require.NoError(t, cart.RemoveItem(context.Background(), "ghost"))
	api.AssertNotCalled(t, "RemoveCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUpdateQuantity(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1"}))

	api.On("UpdateCartQuantity", ctx, "u-1", "tok", "p-1", 5).Return(nil)
	require.NoError(t, cart.UpdateQuantity(ctx, "p-1", 5))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartUpdateQuantity_ZeroRemoves(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1"}))

	api.On("RemoveCartItem", ctx, "u-1", "tok", "p-1").Return(nil)
	require.NoError(t, cart.UpdateQuantity(ctx, "p-1", 0))
	assert.Empty(t, cart.Lines())
}

func TestCartUpdateQuantity_NegativeRejected(t *testing.T) {
	cart, session, _ := newTestCart(t)
	establishShopper(t, session)

	assert.Error(t, cart.UpdateQuantity(context.Background(), "p-1", -2))
}

func TestCartUpdateQuantity_RollsBackOnRemoteFailure(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1", Quantity: 2}))

	api.On("UpdateCartQuantity", ctx, "u-1", "tok", "p-1", 9).Return(apperrors.RemoteUnavailable("api down"))

	err := cart.UpdateQuantity(ctx, "p-1", 9)
	assert.Error(t, err)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity, "failed update must restore the previous quantity")
}

func TestCartTotal_WithResolver(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("GetCart", ctx, "u-1", "tok").Return([]domain.CartLine{
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "gone", Quantity: 1},
	}, nil)
	require.NoError(t, cart.Fetch(ctx))

	resolve := func(id string) (domain.Product, bool) {
		if id == "p-1" {
			return domain.Product{ID: "p-1", Price: 10}, true
		}
		return domain.Product{}, false
	}

	total, unresolved := cart.Total(resolve)
	assert.Equal(t, 20.0, total)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "gone", unresolved[0].ProductID)
}

func TestCartLogsCarryContextPrincipal(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter("storefront", "info", &buf)

	session := NewSession(storage.NewMemory(), newTestLogger())
	cart := NewCart(new(mockCartAPI), session, l)

	ctx := logger.WithPrincipalID(context.Background(), "u-9")
	require.NoError(t, cart.Fetch(ctx))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "u-9", entry["principal_id"])
	assert.Equal(t, "cart fetch skipped: no session id", entry["msg"])
}

func TestCartClearedOnLogout(t *testing.T) {
	cart, session, api := newTestCart(t)
	establishShopper(t, session)
	ctx := context.Background()

	api.On("AddCartItem", ctx, "u-1", "tok", mock.Anything).Return(nil)
	require.NoError(t, cart.AddItem(ctx, domain.CartLine{ProductID: "p-1"}))

	session.Clear(ctx)

	assert.Empty(t, cart.Lines())

	// A fetch after logout is a no-op: no user id remains to scope the call.
	require.NoError(t, cart.Fetch(ctx))
	api.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, cart.Lines())
}
