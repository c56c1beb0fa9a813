package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/haulmatch/loadboard/db"
	"github.com/haulmatch/loadboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadFixture(t *testing.T) (LoadService, *db.GormDB) {
	gdb := newTestDB(t)
	return NewLoadService(db.NewLoadRepo(gdb), testConfig()), gdb
}

func validLoadRequest() *models.CreateLoadRequest {
	return &models.CreateLoadRequest{
		Origin:      "Chicago, IL",
		Destination: "Dallas, TX",
		PickupDate:  time.Now().Add(48 * time.Hour),
		WeightLbs:   24000,
		Rate:        1800,
		Equipment:   "dry van",
	}
}

func TestCreateLoad(t *testing.T) {
	svc, gdb := newLoadFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)

	load, apiErr := svc.CreateLoad(shipper, validLoadRequest())
	require.Nil(t, apiErr)
	assert.Equal(t, models.LoadStatusOpen, load.Status)
	assert.Equal(t, shipper.ID, load.ShipperID)
}

func TestCreateLoadApprovalGate(t *testing.T) {
	svc, gdb := newLoadFixture(t)
	pending := seedUser(t, gdb, "pending@example.com", models.RoleShipper, false)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)

	_, apiErr := svc.CreateLoad(pending, validLoadRequest())
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	_, apiErr = svc.CreateLoad(driver, validLoadRequest())
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestSearchLoads(t *testing.T) {
	svc, gdb := newLoadFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)

	_, apiErr := svc.CreateLoad(shipper, validLoadRequest())
	require.Nil(t, apiErr)
	other := validLoadRequest()
	other.Origin = "Atlanta, GA"
	other.Equipment = "reefer"
	_, apiErr = svc.CreateLoad(shipper, other)
	require.Nil(t, apiErr)

	all, apiErr := svc.SearchLoads(models.LoadFilter{})
	require.Nil(t, apiErr)
	assert.Len(t, all, 2)

	chicago, apiErr := svc.SearchLoads(models.LoadFilter{Origin: "Chicago"})
	require.Nil(t, apiErr)
	require.Len(t, chicago, 1)
	assert.Equal(t, "Chicago, IL", chicago[0].Origin)

	reefer, apiErr := svc.SearchLoads(models.LoadFilter{Equipment: "reefer"})
	require.Nil(t, apiErr)
	assert.Len(t, reefer, 1)

	none, apiErr := svc.SearchLoads(models.LoadFilter{Origin: "Nowhere"})
	require.Nil(t, apiErr)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateLoadOwnership(t *testing.T) {
	svc, gdb := newLoadFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)
	other := seedUser(t, gdb, "other@example.com", models.RoleShipper, true)

	load, apiErr := svc.CreateLoad(shipper, validLoadRequest())
	require.Nil(t, apiErr)

	_, apiErr = svc.UpdateLoad(other, load.ID, &models.UpdateLoadRequest{Rate: 2000})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	updated, apiErr := svc.UpdateLoad(shipper, load.ID, &models.UpdateLoadRequest{Rate: 2000, Status: models.LoadStatusDelivered})
	require.Nil(t, apiErr)
	assert.Equal(t, float64(2000), updated.Rate)
	assert.Equal(t, models.LoadStatusDelivered, updated.Status)

	_, apiErr = svc.UpdateLoad(shipper, load.ID, &models.UpdateLoadRequest{Status: "teleported"})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestDeleteLoad(t *testing.T) {
	svc, gdb := newLoadFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)

	load, apiErr := svc.CreateLoad(shipper, validLoadRequest())
	require.Nil(t, apiErr)

	require.Nil(t, svc.DeleteLoad(shipper, load.ID))

	_, apiErr = svc.GetLoad(load.ID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
