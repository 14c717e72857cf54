package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func updateFixture(t *testing.T) (*UpdateService, *fakeTicketRepo, *fakeHistoryRepo, *recordingDispatcher) {
	t.Helper()

	tickets := newFakeTicketRepo(admissionDay)
	status := domain.TicketStatusInProgress
	priority := domain.TicketPriorityMedium
	assignee := "E200"
	dept := "IT"
	subDept := "Infra"
	tickets.seed(&domain.Ticket{
		Number:             "HR_20240301_001",
		CreatedAt:          admissionDay,
		Title:              "Laptop will not boot",
		ReporterEmpID:      "E100",
		ReporterEmail:      "ravi@corp.example",
		ReporterDepartment: "Sales",
		AssigneeEmpID:      &assignee,
		AssigneeDept:       &dept,
		AssigneeSubDept:    &subDept,
		Priority:           &priority,
		Status:             &status,
	})

	logins := newFakeLoginRepo()
	require.NoError(t, logins.Upsert(context.Background(), "asha@corp.example", "E200"))

	history := &fakeHistoryRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewUpdateService(UpdateDependencies{
		TicketRepo:  tickets,
		LoginRepo:   logins,
		HistoryRepo: history,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
		Now:         func() time.Time { return admissionDay },
	})
	return svc, tickets, history, dispatcher
}

func TestUpdateTicket_OneHistoryRowPerChangedField(t *testing.T) {
	svc, tickets, history, _ := updateFixture(t)

	changes, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_001",
		UserID:       "asha@corp.example",
		Status:       domain.Some(domain.TicketStatusResolved),
		Priority:     domain.Some(domain.TicketPriorityHigh),
	})
	require.NoError(t, err)
	require.Len(t, changes, 2)
	require.Len(t, history.records, 2)

	// Diff order is fixed: priority precedes status.
	assert.Equal(t, domain.ActionPriority, history.records[0].ActionType)
	assert.Equal(t, "Updated Priority", history.records[0].Comment)
	assert.Equal(t, domain.ActionStatus, history.records[1].ActionType)
	assert.Equal(t, "Updated Status", history.records[1].Comment)
	require.NotNil(t, history.records[1].BeforeState)
	assert.Equal(t, "In-Progress", *history.records[1].BeforeState)
	require.NotNil(t, history.records[1].AfterState)
	assert.Equal(t, "Resolved", *history.records[1].AfterState)

	ticket, err := tickets.GetByNumber(context.Background(), "HR_20240301_001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, *ticket.Status)
	assert.Equal(t, domain.TicketPriorityHigh, *ticket.Priority)
}

func TestUpdateTicket_CallerCommentOverridesDefault(t *testing.T) {
	svc, _, history, _ := updateFixture(t)

	comment := "escalating after second report"
	_, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_001",
		UserID:       "asha@corp.example",
		Comment:      &comment,
		Priority:     domain.Some(domain.TicketPriorityHigh),
	})
	require.NoError(t, err)
	require.Len(t, history.records, 1)
	assert.Equal(t, comment, history.records[0].Comment)
}

func TestUpdateTicket_OmittedFieldsUntouched(t *testing.T) {
	svc, tickets, history, dispatcher := updateFixture(t)

	changes, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_001",
		UserID:       "asha@corp.example",
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Empty(t, history.records)
	assert.Empty(t, dispatcher.published())

	ticket, err := tickets.GetByNumber(context.Background(), "HR_20240301_001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, *ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, *ticket.Priority)
	assert.Equal(t, "E200", *ticket.AssigneeEmpID)
}

func TestUpdateTicket_ExplicitNullClearsField(t *testing.T) {
	svc, tickets, history, _ := updateFixture(t)

	// Set a completion date, then clear it with an explicit null.
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber:           "HR_20240301_001",
		UserID:                 "asha@corp.example",
		ExpectedCompletionDate: domain.Some(due),
	})
	require.NoError(t, err)

	changes, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber:           "HR_20240301_001",
		UserID:                 "asha@corp.example",
		ExpectedCompletionDate: domain.Null[time.Time](),
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ActionExpectedCompletionDate, changes[0].ActionType)
	require.NotNil(t, changes[0].BeforeState)
	assert.Equal(t, "2024-03-10", *changes[0].BeforeState)
	assert.Nil(t, changes[0].AfterState)

	ticket, err := tickets.GetByNumber(context.Background(), "HR_20240301_001")
	require.NoError(t, err)
	assert.Nil(t, ticket.ExpectedCompletionDate)
	assert.True(t, ticket.Unassigned())
	require.Len(t, history.records, 2)
}

func TestUpdateTicket_SettingSameValueRecordsNothing(t *testing.T) {
	svc, _, history, _ := updateFixture(t)

	changes, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_001",
		UserID:       "asha@corp.example",
		Status:       domain.Some(domain.TicketStatusInProgress),
	})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Empty(t, history.records)
}

func TestUpdateTicket_InvalidActor(t *testing.T) {
	svc, _, history, _ := updateFixture(t)

	_, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_001",
		UserID:       "stranger@corp.example",
		Status:       domain.Some(domain.TicketStatusClosed),
	})
	require.Error(t, err)
	assert.Equal(t, "INVALID_ACTOR", apperrors.ToDomainError(err).Code)
	assert.Empty(t, history.records)
}

func TestUpdateTicket_TicketNotFound(t *testing.T) {
	svc, _, _, _ := updateFixture(t)

	_, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_099",
		UserID:       "asha@corp.example",
		Status:       domain.Some(domain.TicketStatusClosed),
	})
	require.Error(t, err)
	assert.Equal(t, "TICKET_NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUpdateTicket_HistoryFailureDoesNotFailUpdate(t *testing.T) {
	svc, tickets, history, dispatcher := updateFixture(t)
	history.createErr = errors.New("history table unavailable")

	changes, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_001",
		UserID:       "asha@corp.example",
		Status:       domain.Some(domain.TicketStatusClosed),
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)

	ticket, err := tickets.GetByNumber(context.Background(), "HR_20240301_001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, *ticket.Status)
	assert.Len(t, dispatcher.published(), 1)
}

func TestUpdateTicket_PublishesUpdatedEvent(t *testing.T) {
	svc, _, _, dispatcher := updateFixture(t)

	_, err := svc.UpdateTicket(context.Background(), UpdateInput{
		TicketNumber: "HR_20240301_001",
		UserID:       "asha@corp.example",
		Status:       domain.Some(domain.TicketStatusResolved),
	})
	require.NoError(t, err)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTicketUpdated, published[0].Type)

	payload, ok := published[0].Payload.(events.TicketUpdatedPayload)
	require.True(t, ok)
	require.Len(t, payload.Changes, 1)
	assert.Equal(t, domain.ActionStatus, payload.Changes[0].ActionType)
	assert.Equal(t, "ravi@corp.example", payload.ReporterEmail)
}
