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

type fakeMailer struct {
	decisions []string
}

func (f *fakeMailer) SendApplicationDecision(toEmail, driverName, origin, destination, status string) error {
	f.decisions = append(f.decisions, toEmail+":"+status)
	return nil
}

func newApplicationFixture(t *testing.T) (ApplicationService, *fakeMailer, *db.GormDB) {
	gdb := newTestDB(t)
	mail := &fakeMailer{}
	svc := NewApplicationService(db.NewApplicationRepo(gdb), db.NewLoadRepo(gdb), mail, testConfig())
	return svc, mail, gdb
}

func seedLoad(t *testing.T, gdb *db.GormDB, shipperID uint, status string) *models.Load {
	t.Helper()
	load := &models.Load{
		ShipperID:   shipperID,
		Origin:      "Chicago, IL",
		Destination: "Dallas, TX",
		PickupDate:  time.Now().Add(48 * time.Hour),
		WeightLbs:   24000,
		Rate:        1800,
		Equipment:   "dry van",
		Status:      status,
	}
	require.NoError(t, gdb.DB.Create(load).Error)
	return load
}

func TestApply(t *testing.T) {
	svc, _, gdb := newApplicationFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)
	load := seedLoad(t, gdb, shipper.ID, models.LoadStatusOpen)

	app, apiErr := svc.Apply(driver, load.ID, &models.ApplyRequest{Note: "can pick up tomorrow"})
	require.Nil(t, apiErr)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Equal(t, driver.ID, app.DriverID)
}

func TestApplyRequiresApprovedDriver(t *testing.T) {
	svc, _, gdb := newApplicationFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)
	pending := seedUser(t, gdb, "pending@example.com", models.RoleDriver, false)
	load := seedLoad(t, gdb, shipper.ID, models.LoadStatusOpen)

	_, apiErr := svc.Apply(pending, load.ID, &models.ApplyRequest{})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	_, apiErr = svc.Apply(shipper, load.ID, &models.ApplyRequest{})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestApplyClosedLoadAndDuplicate(t *testing.T) {
	svc, _, gdb := newApplicationFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)
	open := seedLoad(t, gdb, shipper.ID, models.LoadStatusOpen)
	assigned := seedLoad(t, gdb, shipper.ID, models.LoadStatusAssigned)

	_, apiErr := svc.Apply(driver, assigned.ID, &models.ApplyRequest{})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, apiErr = svc.Apply(driver, open.ID, &models.ApplyRequest{})
	require.Nil(t, apiErr)
	_, apiErr = svc.Apply(driver, open.ID, &models.ApplyRequest{})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestAcceptRejectsCompetingApplications(t *testing.T) {
	svc, mail, gdb := newApplicationFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)
	first := seedUser(t, gdb, "first@example.com", models.RoleDriver, true)
	second := seedUser(t, gdb, "second@example.com", models.RoleDriver, true)
	load := seedLoad(t, gdb, shipper.ID, models.LoadStatusOpen)

	winner, apiErr := svc.Apply(first, load.ID, &models.ApplyRequest{})
	require.Nil(t, apiErr)
	loser, apiErr := svc.Apply(second, load.ID, &models.ApplyRequest{})
	require.Nil(t, apiErr)

	accepted, apiErr := svc.Accept(shipper, winner.ID)
	require.Nil(t, apiErr)
	assert.Equal(t, models.ApplicationStatusAccepted, accepted.Status)

	var reloaded models.Application
	require.NoError(t, gdb.DB.First(&reloaded, loser.ID).Error)
	assert.Equal(t, models.ApplicationStatusRejected, reloaded.Status)

	var reloadedLoad models.Load
	require.NoError(t, gdb.DB.First(&reloadedLoad, load.ID).Error)
	assert.Equal(t, models.LoadStatusAssigned, reloadedLoad.Status)

	assert.Contains(t, mail.decisions, "first@example.com:accepted")
}

func TestAcceptOnlyByLoadOwner(t *testing.T) {
	svc, _, gdb := newApplicationFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)
	other := seedUser(t, gdb, "other@example.com", models.RoleShipper, true)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)
	load := seedLoad(t, gdb, shipper.ID, models.LoadStatusOpen)

	app, apiErr := svc.Apply(driver, load.ID, &models.ApplyRequest{})
	require.Nil(t, apiErr)

	_, apiErr = svc.Accept(other, app.ID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestDecideTwice(t *testing.T) {
	svc, _, gdb := newApplicationFixture(t)
	shipper := seedUser(t, gdb, "shipper@example.com", models.RoleShipper, true)
	driver := seedUser(t, gdb, "driver@example.com", models.RoleDriver, true)
	load := seedLoad(t, gdb, shipper.ID, models.LoadStatusOpen)

	app, apiErr := svc.Apply(driver, load.ID, &models.ApplyRequest{})
	require.Nil(t, apiErr)

	_, apiErr = svc.Reject(shipper, app.ID)
	require.Nil(t, apiErr)
	_, apiErr = svc.Accept(shipper, app.ID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
