package customerticket

import (
	"time"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/pkg/dbmetrics"
)

// DBExecutor is the query surface this repository needs.
type DBExecutor = dbmetrics.DBExecutor

// UsableTicketsFilter narrows the usable-ticket selection.
// A ticket is usable when it is unexpired at At and has unused units left.
type UsableTicketsFilter struct {
	CustomerID     int64
	TicketType     *domain.TicketType
	UsageTimeHours *int
	At             time.Time
}
