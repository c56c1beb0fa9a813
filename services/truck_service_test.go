package services

import (
	"net/http"
	"testing"

	"github.com/haulmatch/loadboard/db"
	"github.com/haulmatch/loadboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTruckFixture(t *testing.T) (TruckService, *db.GormDB) {
	gdb := newTestDB(t)
	return NewTruckService(db.NewTruckRepo(gdb), testConfig()), gdb
}

func TestCreateTruck(t *testing.T) {
	svc, gdb := newTruckFixture(t)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)

	truck, apiErr := svc.CreateTruck(driver, &models.CreateTruckRequest{
		Equipment:    "dry van",
		CapacityLbs:  44000,
		HomeBase:     "Memphis, TN",
		LicensePlate: "TN-1234",
	})
	require.Nil(t, apiErr)
	assert.True(t, truck.Available)
	assert.Equal(t, driver.ID, truck.DriverID)
}

func TestCreateTruckApprovalGate(t *testing.T) {
	svc, gdb := newTruckFixture(t)
	pending := seedUser(t, gdb, "pending@example.com", models.RoleDriver, false)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)

	req := &models.CreateTruckRequest{Equipment: "flatbed", CapacityLbs: 48000, HomeBase: "Tulsa, OK"}

	_, apiErr := svc.CreateTruck(pending, req)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	_, apiErr = svc.CreateTruck(shipper, req)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestUpdateTruckAvailability(t *testing.T) {
	svc, gdb := newTruckFixture(t)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)
	other := seedUser(t, gdb, "other@example.com", models.RoleDriver, true)

	truck, apiErr := svc.CreateTruck(driver, &models.CreateTruckRequest{
		Equipment: "reefer", CapacityLbs: 42000, HomeBase: "Fresno, CA",
	})
	require.Nil(t, apiErr)

	unavailable := false
	_, apiErr = svc.UpdateTruck(other, truck.ID, &models.UpdateTruckRequest{Available: &unavailable})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	updated, apiErr := svc.UpdateTruck(driver, truck.ID, &models.UpdateTruckRequest{Available: &unavailable})
	require.Nil(t, apiErr)
	assert.False(t, updated.Available)

	available, apiErr := svc.GetAvailableTrucks()
	require.Nil(t, apiErr)
	assert.Empty(t, available)
}

func TestDeleteTruck(t *testing.T) {
	svc, gdb := newTruckFixture(t)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)

	truck, apiErr := svc.CreateTruck(driver, &models.CreateTruckRequest{
		Equipment: "dry van", CapacityLbs: 44000, HomeBase: "Memphis, TN",
	})
	require.Nil(t, apiErr)

	require.Nil(t, svc.DeleteTruck(driver, truck.ID))

	mine, apiErr := svc.GetMyTrucks(driver.ID)
	require.Nil(t, apiErr)
	assert.Empty(t, mine)
}
