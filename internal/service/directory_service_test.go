package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func directoryFixture() *DirectoryService {
	managerID := "E1"
	leadID := "E2"
	employees := newFakeEmployeeRepo(
		&domain.Employee{EmpID: "E1", Name: "Head", Email: "head@corp.example", Dept: "IT", SubDept: "Mgmt", Active: true},
		&domain.Employee{EmpID: "E2", Name: "Lead", Email: "lead@corp.example", Dept: "IT", SubDept: "Infra", ManagerID: &managerID, Active: true},
		&domain.Employee{EmpID: "E3", Name: "Eng A", Email: "enga@corp.example", Dept: "IT", SubDept: "Infra", ManagerID: &leadID, Active: true},
		&domain.Employee{EmpID: "E4", Name: "Eng B", Email: "engb@corp.example", Dept: "IT", SubDept: "Infra", ManagerID: &leadID, Active: true},
		&domain.Employee{EmpID: "E5", Name: "Outsider", Email: "out@corp.example", Dept: "Finance", ManagerID: &managerID, Active: true},
	)
	return NewDirectoryService(employees, newFakeRuleRepo(), &fakeHODRepo{heads: map[string]string{"IT": "E1"}})
}

func TestTeamStructure_BuildsTreeFromManagerLinks(t *testing.T) {
	svc := directoryFixture()

	chart, err := svc.TeamStructure(context.Background(), "E1")
	require.NoError(t, err)
	assert.Equal(t, "E1", chart.EmpID)
	assert.Equal(t, "Head", chart.EmpName)

	// Finance colleague reports to E1 but sits outside the department.
	require.Len(t, chart.Children, 1)
	lead := chart.Children[0]
	assert.Equal(t, "E2", lead.EmpID)
	require.Len(t, lead.Children, 2)
	for _, child := range lead.Children {
		assert.Empty(t, child.Children)
	}
}

func TestTeamStructure_UnknownEmployee(t *testing.T) {
	svc := directoryFixture()

	_, err := svc.TeamStructure(context.Background(), "E99")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestHODLookups(t *testing.T) {
	svc := directoryFixture()

	isHOD, err := svc.IsHOD(context.Background(), "E1")
	require.NoError(t, err)
	assert.True(t, isHOD)

	isHOD, err = svc.IsHOD(context.Background(), "E2")
	require.NoError(t, err)
	assert.False(t, isHOD)

	hodID, err := svc.HODForDept(context.Background(), "IT")
	require.NoError(t, err)
	require.NotNil(t, hodID)
	assert.Equal(t, "E1", *hodID)

	hodID, err = svc.HODForDept(context.Background(), "Finance")
	require.NoError(t, err)
	assert.Nil(t, hodID)
}

func TestProfileByEmail(t *testing.T) {
	svc := directoryFixture()

	profile, err := svc.ProfileByEmail(context.Background(), "lead@corp.example")
	require.NoError(t, err)
	assert.Equal(t, "E2", profile.EmpID)

	_, err = svc.ProfileByEmail(context.Background(), "ghost@corp.example")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
