package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// UnlimitedDailyPetLimit disables capacity checks for a kindergarten.
const UnlimitedDailyPetLimit = -1

// Ticket low-balance notification threshold: when a customer ticket's
// unused count drops to this value or below, a notification event is
// published.
const LowBalanceThreshold = 1

// Business validation constants
const (
	MinUsageTimeHours  = 1
	MaxUsageTimeHours  = 12
	MinUsageCount      = 1
	MaxUsageCount      = 1000
	MinUsagePeriodDays = 1
	MaxUsagePeriodDays = 730
	MaxPetNameLength   = 50
	MaxHotelStayNights = 60
)
