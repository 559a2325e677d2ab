package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/services"
)

func TestCartSyncReplacesExistingLines(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "sync@test.local").ID

	_, err := svc.Add(userID, builds[0].ID, 4)
	require.NoError(t, err)
	_, err = svc.Add(userID, builds[1].ID, 1)
	require.NoError(t, err)

	lines, err := svc.Sync(userID, []services.CartItemIn{
		{BuildID: builds[1].ID, Quantity: 2},
		{BuildID: builds[2].ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byBuild := map[uint]int{}
	for _, l := range lines {
		byBuild[l.BuildID] = l.Quantity
	}
	require.Equal(t, map[uint]int{builds[1].ID: 2, builds[2].ID: 1}, byBuild)
}

func TestCartSyncEmptyClearsCart(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "clear@test.local").ID

	_, err := svc.Add(userID, builds[0].ID, 2)
	require.NoError(t, err)

	lines, err := svc.Sync(userID, nil)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCartSyncUnknownBuildLeavesCartUntouched(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "atomic@test.local").ID

	_, err := svc.Add(userID, builds[0].ID, 3)
	require.NoError(t, err)

	_, err = svc.Sync(userID, []services.CartItemIn{
		{BuildID: builds[1].ID, Quantity: 1},
		{BuildID: 9999, Quantity: 1},
	})
	require.Error(t, err)
	require.Equal(t, apperr.KindReferential, apperr.KindOf(err))

	lines, err := svc.Get(userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, builds[0].ID, lines[0].BuildID)
	require.Equal(t, 3, lines[0].Quantity)
}

func TestCartSyncRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "badinput@test.local").ID

	_, err := svc.Sync(userID, []services.CartItemIn{{BuildID: builds[0].ID, Quantity: 0}})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Sync(userID, []services.CartItemIn{
		{BuildID: builds[0].ID, Quantity: 1},
		{BuildID: builds[0].ID, Quantity: 2},
	})
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCartAddIncrementsExistingLine(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "add@test.local").ID

	line, err := svc.Add(userID, builds[0].ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, line.Quantity)

	line, err = svc.Add(userID, builds[0].ID, 3)
	require.NoError(t, err)
	require.Equal(t, 5, line.Quantity)

	lines, err := svc.Get(userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "Budget Gaming", lines[0].Name)
	require.Equal(t, int64(86500), lines[0].TotalPrice)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "default@test.local").ID

	line, err := svc.Add(userID, builds[0].ID, 0)
	require.NoError(t, err)
	require.Equal(t, 1, line.Quantity)
}

func TestCartAddUnknownBuild(t *testing.T) {
	db := newTestDB(t)
	seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "unknown@test.local").ID

	_, err := svc.Add(userID, 9999, 1)
	require.Equal(t, apperr.KindReferential, apperr.KindOf(err))
}

func TestCartUpdateQuantity(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "update@test.local").ID

	line, err := svc.Add(userID, builds[0].ID, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(userID, line.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 7, updated.Quantity)

	_, err = svc.UpdateQuantity(userID, line.ID, 0)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UpdateQuantity(userID, 9999, 3)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCartUpdateQuantityOtherUsersLine(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	owner := seedUser(t, db, "owner@test.local").ID
	other := seedUser(t, db, "other@test.local").ID

	line, err := svc.Add(owner, builds[0].ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(other, line.ID, 5)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "remove@test.local").ID

	line, err := svc.Add(userID, builds[0].ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(userID, line.ID))
	require.NoError(t, svc.Remove(userID, line.ID))

	lines, err := svc.Get(userID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCartReAddAfterRemove(t *testing.T) {
	db := newTestDB(t)
	builds := seedBuilds(t, db)
	svc := newCartService(t, db)
	userID := seedUser(t, db, "readd@test.local").ID

	line, err := svc.Add(userID, builds[0].ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(userID, line.ID))

	line, err = svc.Add(userID, builds[0].ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, line.Quantity)
}
