package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type fakeEmployeeRepo struct {
	byEmail map[string]*domain.Employee
	byID    map[string]*domain.Employee
}

func newFakeEmployeeRepo(employees ...*domain.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{
		byEmail: make(map[string]*domain.Employee),
		byID:    make(map[string]*domain.Employee),
	}
	for _, emp := range employees {
		repo.byEmail[emp.Email] = emp
		repo.byID[emp.EmpID] = emp
	}
	return repo
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	emp, ok := r.byEmail[email]
	if !ok || !emp.Active {
		return nil, pgx.ErrNoRows
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, empID string) (*domain.Employee, error) {
	emp, ok := r.byID[empID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) ListByDeptSubDept(_ context.Context, dept, subDept string) ([]domain.Employee, error) {
	var result []domain.Employee
	for _, emp := range r.byID {
		if emp.Dept == dept && emp.SubDept == subDept {
			result = append(result, *emp)
		}
	}
	return result, nil
}

func (r *fakeEmployeeRepo) ListByDept(_ context.Context, dept string) ([]domain.Employee, error) {
	var result []domain.Employee
	for _, emp := range r.byID {
		if emp.Dept == dept {
			result = append(result, *emp)
		}
	}
	return result, nil
}

type fakeRuleRepo struct {
	rules map[domain.AssignmentCriteria]string
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[domain.AssignmentCriteria]string)}
}

func (r *fakeRuleRepo) FindAssignee(_ context.Context, criteria domain.AssignmentCriteria) (string, error) {
	empID, ok := r.rules[criteria]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return empID, nil
}

func (r *fakeRuleRepo) Departments(context.Context) ([]string, error) { return nil, nil }

func (r *fakeRuleRepo) SubDepartments(context.Context, string) ([]string, error) { return nil, nil }

func (r *fakeRuleRepo) SubTasks(context.Context, string, string) ([]string, error) { return nil, nil }

func (r *fakeRuleRepo) TaskLabels(context.Context, string, string, string) ([]string, error) {
	return nil, nil
}

type fakePrefixRepo struct {
	prefixes map[string]string
}

func (r *fakePrefixRepo) FindBySubDept(_ context.Context, subDept string) (string, error) {
	prefix, ok := r.prefixes[subDept]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return prefix, nil
}

type fakeTicketRepo struct {
	mu        sync.Mutex
	tickets   map[string]*domain.Ticket
	details   map[string]*repository.TicketDetails
	createdAt time.Time
	updateErr error
}

func newFakeTicketRepo(createdAt time.Time) *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:   make(map[string]*domain.Ticket),
		details:   make(map[string]*repository.TicketDetails),
		createdAt: createdAt,
	}
}

func (r *fakeTicketRepo) seed(ticket *domain.Ticket) {
	r.tickets[ticket.Number] = ticket
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[ticket.Number]; exists {
		return fmt.Errorf("duplicate ticket number %s", ticket.Number)
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = r.createdAt
	}
	copied := *ticket
	r.tickets[ticket.Number] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByNumber(_ context.Context, number string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[number]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetDetails(_ context.Context, number string) (*repository.TicketDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if details, ok := r.details[number]; ok {
		return details, nil
	}
	ticket, ok := r.tickets[number]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &repository.TicketDetails{Ticket: *ticket}, nil
}

func (r *fakeTicketRepo) CountByPrefixOnDay(_ context.Context, prefix string, day time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, ticket := range r.tickets {
		if strings.HasPrefix(ticket.Number, prefix) && sameDay(ticket.CreatedAt, day) {
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) UpdateTracked(_ context.Context, number string, fields domain.TrackedFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	ticket, ok := r.tickets[number]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.ExpectedCompletionDate = fields.ExpectedCompletionDate
	ticket.Priority = fields.Priority
	ticket.Status = fields.Status
	ticket.AssigneeDept = fields.AssigneeDept
	ticket.AssigneeSubDept = fields.AssigneeSubDept
	ticket.AssigneeEmpID = fields.AssigneeEmpID
	return nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]repository.TicketDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []repository.TicketDetails
	for _, ticket := range r.tickets {
		if !matchesFilter(ticket, filter) {
			continue
		}
		result = append(result, repository.TicketDetails{Ticket: *ticket})
	}
	return result, nil
}

func matchesFilter(ticket *domain.Ticket, filter repository.TicketFilter) bool {
	if filter.AssigneeEmpID != nil {
		if ticket.AssigneeEmpID == nil || *ticket.AssigneeEmpID != *filter.AssigneeEmpID {
			return false
		}
	}
	if filter.ReporterEmpID != nil && ticket.ReporterEmpID != *filter.ReporterEmpID {
		return false
	}
	if filter.ReporterDepartment != nil && ticket.ReporterDepartment != *filter.ReporterDepartment {
		return false
	}
	if filter.AssigneeDept != nil {
		if ticket.AssigneeDept == nil || *ticket.AssigneeDept != *filter.AssigneeDept {
			return false
		}
	}
	if filter.CreatedBefore != nil && !ticket.CreatedAt.Before(*filter.CreatedBefore) {
		return false
	}
	return true
}

func (r *fakeTicketRepo) ListNumbersForEmployee(_ context.Context, empID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []string
	for _, ticket := range r.tickets {
		if ticket.ReporterEmpID == empID {
			result = append(result, ticket.Number)
			continue
		}
		if ticket.AssigneeEmpID != nil && *ticket.AssigneeEmpID == empID {
			result = append(result, ticket.Number)
		}
	}
	return result, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

type fakeLoginRepo struct {
	logins map[string]*domain.Login
}

func newFakeLoginRepo() *fakeLoginRepo {
	return &fakeLoginRepo{logins: make(map[string]*domain.Login)}
}

func (r *fakeLoginRepo) GetByUsername(_ context.Context, username string) (*domain.Login, error) {
	login, ok := r.logins[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return login, nil
}

func (r *fakeLoginRepo) Exists(_ context.Context, username string) (bool, error) {
	_, ok := r.logins[username]
	return ok, nil
}

func (r *fakeLoginRepo) Upsert(_ context.Context, username, empID string) error {
	if _, ok := r.logins[username]; ok {
		return nil
	}
	r.logins[username] = &domain.Login{Username: username, EmpID: empID}
	return nil
}

func (r *fakeLoginRepo) SetPassword(_ context.Context, username, passwordHash string) error {
	login, ok := r.logins[username]
	if !ok {
		return nil
	}
	login.PasswordHash = &passwordHash
	return nil
}

type fakeHistoryRepo struct {
	records   []domain.HistoryRecord
	nextID    int64
	createErr error
}

func (r *fakeHistoryRepo) Create(_ context.Context, record *domain.HistoryRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	record.ID = r.nextID
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeHistoryRepo) ListByTicket(_ context.Context, ticketNumber string) ([]domain.HistoryRecord, error) {
	var result []domain.HistoryRecord
	for _, record := range r.records {
		if record.TicketNumber == ticketNumber {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *fakeHistoryRepo) ListForEmployee(_ context.Context, _, excludeUserID string, filter repository.ReadFilter) ([]domain.HistoryRecord, error) {
	var result []domain.HistoryRecord
	for _, record := range r.records {
		if record.UserID == excludeUserID {
			continue
		}
		if filter == repository.ReadFilterRead && !record.IsRead {
			continue
		}
		if filter == repository.ReadFilterUnread && record.IsRead {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (r *fakeHistoryRepo) CountForEmployee(_ context.Context, _, excludeUserID string) (repository.NotificationCounts, error) {
	var counts repository.NotificationCounts
	for _, record := range r.records {
		if record.UserID == excludeUserID {
			continue
		}
		counts.All++
		if record.IsRead {
			counts.Read++
		} else {
			counts.Unread++
		}
	}
	return counts, nil
}

func (r *fakeHistoryRepo) MarkRead(_ context.Context, id int64) error {
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].IsRead = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeHODRepo struct {
	heads map[string]string
}

func (r *fakeHODRepo) IsHOD(_ context.Context, empID string) (bool, error) {
	for _, hodID := range r.heads {
		if hodID == empID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeHODRepo) HODForDept(_ context.Context, dept string) (*string, error) {
	hodID, ok := r.heads[dept]
	if !ok {
		return nil, nil
	}
	return &hodID, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(_ context.Context, to, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (s *fakeSender) messages() []sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMail{}, s.sent...)
}

type fakeOTPStore struct {
	codes map[string]string
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]string)}
}

func (s *fakeOTPStore) Put(_ context.Context, username, code string, _ time.Duration) error {
	s.codes[username] = code
	return nil
}

func (s *fakeOTPStore) Get(_ context.Context, username string) (string, error) {
	code, ok := s.codes[username]
	if !ok {
		return "", persistence.ErrOTPNotFound
	}
	return code, nil
}

func (s *fakeOTPStore) Delete(_ context.Context, username string) error {
	delete(s.codes, username)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
