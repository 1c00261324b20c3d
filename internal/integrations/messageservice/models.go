package messageservice

// TemplateLowBalance is the registered template for ticket low-balance
// alerts.
const TemplateLowBalance = "ticket_low_balance"

// SendTemplateRequest is the gateway's template-send payload.
type SendTemplateRequest struct {
	TemplateCode string            `json:"templateCode"`
	PhoneNumber  string            `json:"phoneNumber"`
	Variables    map[string]string `json:"variables"`
}

// ErrorResponse is the gateway's error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
