package stripe

// Event is the subset of the webhook envelope this service reads.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object EventObject `json:"object"`
	} `json:"data"`
}

// EventObject is a checkout session or invoice.
type EventObject struct {
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	AmountTotal  int64             `json:"amount_total"`
	Metadata     map[string]string `json:"metadata"`
}

// PaymentEvents are the event types that confirm a payment; everything
// else is acknowledged and ignored.
var PaymentEvents = map[string]bool{
	"checkout.session.completed": true,
	"invoice.payment_succeeded":  true,
}
