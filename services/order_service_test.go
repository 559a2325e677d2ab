package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/services"
)

func TestOrderCreateComputesTotalServerSide(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newOrderService(t, db)
	userID := seedUser(t, db, "order@test.local").ID

	out, err := svc.Create(userID, &services.CreateOrderIn{
		Phone: "+79990001122",
		Items: []services.OrderItemIn{
			{BuildID: builds[0].ID, Quantity: 2, UnitPrice: 86500},
			{BuildID: builds[2].ID, Quantity: 1, UnitPrice: 205500},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2*86500+205500), out.Total)
	require.Equal(t, entity.OrderStatusCreated, out.Status)
	require.Len(t, out.Items, 2)

	byBuild := map[uint]int64{}
	for _, it := range out.Items {
		byBuild[it.BuildID] = it.UnitPrice
	}
	require.Equal(t, int64(86500), byBuild[builds[0].ID])
	require.Equal(t, int64(205500), byBuild[builds[2].ID])
}

func TestOrderCreateRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newOrderService(t, db)
	userID := seedUser(t, db, "orderbad@test.local").ID

	_, err := svc.Create(userID, &services.CreateOrderIn{Phone: "+7999", Items: nil})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(userID, &services.CreateOrderIn{
		Items: []services.OrderItemIn{{BuildID: builds[0].ID, Quantity: 1, UnitPrice: 100}},
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(userID, &services.CreateOrderIn{
		Phone: "+7999",
		Items: []services.OrderItemIn{{BuildID: builds[0].ID, Quantity: 0, UnitPrice: 100}},
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestOrderCreateUnknownBuildLeavesNoOrphan(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newOrderService(t, db)
	userID := seedUser(t, db, "orphan@test.local").ID

	_, err := svc.Create(userID, &services.CreateOrderIn{
		Phone: "+7999",
		Items: []services.OrderItemIn{
			{BuildID: builds[0].ID, Quantity: 1, UnitPrice: 86500},
			{BuildID: 9999, Quantity: 1, UnitPrice: 1},
		},
	})
	require.Equal(t, apperr.KindReferential, apperr.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestOrderListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newOrderService(t, db)
	userID := seedUser(t, db, "list@test.local").ID

	first, err := svc.Create(userID, &services.CreateOrderIn{
		Phone: "+7999",
		Items: []services.OrderItemIn{{BuildID: builds[0].ID, Quantity: 1, UnitPrice: 86500}},
	})
	require.NoError(t, err)
	second, err := svc.Create(userID, &services.CreateOrderIn{
		Phone: "+7999",
		Items: []services.OrderItemIn{{BuildID: builds[1].ID, Quantity: 1, UnitPrice: 144500}},
	})
	require.NoError(t, err)

	orders, err := svc.ListForUser(userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)
	require.Len(t, orders[0].Items, 1)
}

func TestOrderListScopedToUser(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newOrderService(t, db)
	alice := seedUser(t, db, "alice@test.local").ID
	bob := seedUser(t, db, "bob@test.local").ID

	_, err := svc.Create(alice, &services.CreateOrderIn{
		Phone: "+7999",
		Items: []services.OrderItemIn{{BuildID: builds[0].ID, Quantity: 1, UnitPrice: 86500}},
	})
	require.NoError(t, err)

	orders, err := svc.ListForUser(bob)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestOrderCompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newOrderService(t, db)
	userID := seedUser(t, db, "complete@test.local").ID

	out, err := svc.Create(userID, &services.CreateOrderIn{
		Phone: "+7999",
		Items: []services.OrderItemIn{{BuildID: builds[0].ID, Quantity: 1, UnitPrice: 86500}},
	})
	require.NoError(t, err)

	done, err := svc.Complete(out.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusCompleted, done.Status)

	again, err := svc.Complete(out.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusCompleted, again.Status)
}

func TestOrderCompleteUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(t, db)

	_, err := svc.Complete(9999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderAdminListingJoinsEmail(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newOrderService(t, db)
	user := seedUser(t, db, "admin-view@test.local")

	out, err := svc.Create(user.ID, &services.CreateOrderIn{
		Phone: "+7999",
		Items: []services.OrderItemIn{{BuildID: builds[0].ID, Quantity: 2, UnitPrice: 86500}},
	})
	require.NoError(t, err)

	rows, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "admin-view@test.local", rows[0].UserEmail)
	require.Len(t, rows[0].Items, 1)

	row, err := svc.GetForAdmin(out.ID)
	require.NoError(t, err)
	require.Equal(t, out.Total, row.Total)

	_, err = svc.GetForAdmin(9999)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// Checkout flow end to end: build a cart, place the order from it, complete.
func TestOrderCheckoutFlow(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	cart := newCartService(t, db)
	orders := newOrderService(t, db)
	userID := seedUser(t, db, "flow@test.local").ID

	lines, err := cart.Sync(userID, []services.CartItemIn{
		{BuildID: builds[0].ID, Quantity: 2},
		{BuildID: builds[2].ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	items := make([]services.OrderItemIn, 0, len(lines))
	for _, l := range lines {
		items = append(items, services.OrderItemIn{
			BuildID:   l.BuildID,
			Quantity:  l.Quantity,
			UnitPrice: l.TotalPrice,
		})
	}
	out, err := orders.Create(userID, &services.CreateOrderIn{Phone: "+79990001122", Items: items})
	require.NoError(t, err)
	require.Equal(t, int64(2*86500+205500), out.Total)

	done, err := orders.Complete(out.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OrderStatusCompleted, done.Status)
}
