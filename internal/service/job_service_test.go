package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

func clientFixture(t *testing.T) (*JobService, *domain.StaffUser) {
	t.Helper()

	admin := domain.StaffUser{ID: "adm", Name: "Asha", Designation: domain.DesignationAdmin, Active: true}
	staffRepo := newFakeStaffRepo(admin)
	clientRepo := newFakeClientRepo(domain.Client{
		ID:                  "cl-1",
		CompanyName:         "Acme",
		PayoutOption:        domain.PayoutPercentage,
		AgreementPercentage: 8.33,
		BillingSites:        []domain.BillingSite{{Address: "HQ", State: "Karnataka"}},
	})

	svc := NewJobService(JobDependencies{
		JobRepo:    newFakeJobRepo(),
		ClientRepo: clientRepo,
		StaffRepo:  staffRepo,
	})
	return svc, &admin
}

func TestUpdateClientKeepsUnsetFeeTerms(t *testing.T) {
	svc, admin := clientFixture(t)

	updated, err := svc.UpdateClient(context.Background(), admin, "cl-1", ClientInput{CompanyName: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.CompanyName)
	assert.Equal(t, 8.33, updated.AgreementPercentage)
	assert.Equal(t, domain.PayoutPercentage, updated.PayoutOption)
	require.Len(t, updated.BillingSites, 1)

	updated, err = svc.UpdateClient(context.Background(), admin, "cl-1", ClientInput{FlatPayAmount: 150000})
	require.NoError(t, err)
	assert.Equal(t, 8.33, updated.AgreementPercentage)
	assert.Equal(t, float64(150000), updated.FlatPayAmount)
}

func TestUpdateClientAppliesSetFeeTerms(t *testing.T) {
	svc, admin := clientFixture(t)

	updated, err := svc.UpdateClient(context.Background(), admin, "cl-1", ClientInput{
		PayoutOption:        domain.PayoutBoth,
		AgreementPercentage: 10,
		FlatPayAmount:       50000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutBoth, updated.PayoutOption)
	assert.Equal(t, float64(10), updated.AgreementPercentage)
	assert.Equal(t, float64(50000), updated.FlatPayAmount)
	assert.Equal(t, "Acme", updated.CompanyName)
}
