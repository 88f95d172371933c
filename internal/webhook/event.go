// Package webhook authenticates signed delivery-status callbacks from the
// email provider and routes verified events to observable outcomes.
//
// The trust boundary is the signature scheme implemented in verify.go: an
// Event value exists only as the output of a successful Verify call. Nothing
// else in the codebase constructs one from raw request bytes.
package webhook

// EventType is the closed set of delivery-status event kinds the provider
// emits. Unrecognized strings map to EventUnknown rather than failing — the
// provider adds kinds over time and an unknown one must still be acked.
type EventType string

const (
	EventSent            EventType = "email.sent"
	EventDelivered       EventType = "email.delivered"
	EventDeliveryDelayed EventType = "email.delivery_delayed"
	EventFailed          EventType = "email.failed"
	EventBounced         EventType = "email.bounced"
	EventComplained      EventType = "email.complained"
	EventClicked         EventType = "email.clicked"
	EventScheduled       EventType = "email.scheduled"
	EventSuppressed      EventType = "email.suppressed"
	EventOpened          EventType = "email.opened"
	EventReceived        EventType = "email.received"

	// EventUnknown is the catch-all for types this version does not know.
	EventUnknown EventType = "unknown"
)

var knownTypes = map[EventType]bool{
	EventSent:            true,
	EventDelivered:       true,
	EventDeliveryDelayed: true,
	EventFailed:          true,
	EventBounced:         true,
	EventComplained:      true,
	EventClicked:         true,
	EventScheduled:       true,
	EventSuppressed:      true,
	EventOpened:          true,
	EventReceived:        true,
}

// ParseEventType maps a raw type string onto the closed enum.
func ParseEventType(s string) EventType {
	if knownTypes[EventType(s)] {
		return EventType(s)
	}
	return EventUnknown
}

// EventData is the payload subset the router needs.
type EventData struct {
	// EmailID is the provider's identifier for the email the event concerns.
	EmailID string `json:"email_id"`

	// Error carries the provider's reported failure detail for failed and
	// bounced events. Empty otherwise.
	Error string `json:"error"`
}

// Event is a verified, decoded delivery-status event.
//
// RawType preserves the provider's exact type string so unknown kinds can be
// acked and logged verbatim.
type Event struct {
	Type    EventType
	RawType string
	Data    EventData
}

// Headers are the three identifying webhook headers. The raw body plus these
// three values are everything the signature covers.
type Headers struct {
	ID        string // svix-id
	Timestamp string // svix-timestamp, unix seconds
	Signature string // svix-signature, space-delimited "v1,<base64>" tokens
}
