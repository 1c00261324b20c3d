package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/internal/integrations/messageservice"
	"github.com/jw-park/petkinder-backend/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeCustomerReader struct {
	customer *domain.Customer
	err      error
}

func (f *fakeCustomerReader) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return f.customer, f.err
}

type fakeTicketReader struct {
	ticket *domain.CustomerTicket
}

func (f *fakeTicketReader) GetByID(ctx context.Context, id int64) (*domain.CustomerTicket, error) {
	return f.ticket, nil
}

type sentAlert struct {
	phone     string
	name      string
	ticket    string
	remaining int
}

type fakeSender struct {
	failures int
	sent     []sentAlert
	err      error
}

func (f *fakeSender) SendLowBalanceAlert(ctx context.Context, phoneNumber, customerName, ticketName string, remainingCount int) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("gateway timeout")
	}
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentAlert{phone: phoneNumber, name: customerName, ticket: ticketName, remaining: remainingCount})
	return nil
}

func newNotifierUnderTest(customers *fakeCustomerReader, sender *fakeSender) *Notifier {
	return &Notifier{
		customers: customers,
		tickets: &fakeTicketReader{ticket: &domain.CustomerTicket{
			ID:     20,
			Ticket: &domain.Ticket{TicketType: domain.TicketTypeTime, UsageTimeHours: ptr.Ptr(2)},
		}},
		sender:      sender,
		log:         noopLogger{},
		backoff:     time.Millisecond,
		maxAttempts: 3,
	}
}

func testEvent() *TicketLowBalanceEvent {
	return &TicketLowBalanceEvent{CustomerID: 2, CustomerTicketID: 20, RemainingCount: 1}
}

func TestNotify(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifierUnderTest(&fakeCustomerReader{customer: &domain.Customer{
		ID: 2, Name: "Jiwoo", PhoneNumber: "01012345678",
	}}, sender)

	require.NoError(t, n.notify(context.Background(), testEvent()))
	assert.Equal(t, []sentAlert{{
		phone:     "01012345678",
		name:      "Jiwoo",
		ticket:    "2-hour ticket",
		remaining: 1,
	}}, sender.sent)
}

func TestNotify_RetriesTransientFailures(t *testing.T) {
	sender := &fakeSender{failures: 2}
	n := newNotifierUnderTest(&fakeCustomerReader{customer: &domain.Customer{ID: 2}}, sender)

	require.NoError(t, n.notify(context.Background(), testEvent()))
	assert.Len(t, sender.sent, 1)
}

func TestNotify_GivesUpAfterMaxAttempts(t *testing.T) {
	sender := &fakeSender{failures: 10}
	n := newNotifierUnderTest(&fakeCustomerReader{customer: &domain.Customer{ID: 2}}, sender)

	err := n.notify(context.Background(), testEvent())
	require.Error(t, err)
	assert.Equal(t, 7, sender.failures, "stops after three attempts")
	assert.Empty(t, sender.sent)
}

func TestNotify_TemplateRejectionIsNotRetried(t *testing.T) {
	sender := &fakeSender{err: messageservice.ErrInvalidTemplate}
	n := newNotifierUnderTest(&fakeCustomerReader{customer: &domain.Customer{ID: 2}}, sender)

	err := n.notify(context.Background(), testEvent())
	assert.ErrorIs(t, err, messageservice.ErrInvalidTemplate)
}

func TestNotify_CustomerLookupFailure(t *testing.T) {
	sender := &fakeSender{}
	n := newNotifierUnderTest(&fakeCustomerReader{err: errors.New("connection refused")}, sender)

	err := n.notify(context.Background(), testEvent())
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestTicketLabel(t *testing.T) {
	tests := []struct {
		name   string
		ticket *domain.Ticket
		want   string
	}{
		{"time with hours", &domain.Ticket{TicketType: domain.TicketTypeTime, UsageTimeHours: ptr.Ptr(4)}, "4-hour ticket"},
		{"time without hours", &domain.Ticket{TicketType: domain.TicketTypeTime}, "time ticket"},
		{"all day", &domain.Ticket{TicketType: domain.TicketTypeAllDay}, "all-day ticket"},
		{"hotel", &domain.Ticket{TicketType: domain.TicketTypeHotel}, "hotel ticket"},
		{"nil product", nil, "ticket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ticketLabel(tt.ticket))
		})
	}
}
