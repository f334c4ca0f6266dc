package leadimport

import "time"

// Channel identifies the messaging channel a lead arrived on.
type Channel string

const ChannelWhatsApp Channel = "whatsapp"

// InboundMessage is one raw chat message delivered by the messaging provider.
// It is immutable once received.
type InboundMessage struct {
	ID          string
	FromAddress string
	Text        string
	ReceivedAt  time.Time
	Channel     Channel
}

// DecisionKind is the closed set of terminal outcomes for one inbound message.
type DecisionKind int

const (
	DecisionImported DecisionKind = iota
	DecisionDuplicate
	DecisionLowConfidence
	DecisionMissingRequiredField
	DecisionOutsideBusinessHours
	DecisionError
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionImported:
		return "imported"
	case DecisionDuplicate:
		return "duplicate"
	case DecisionLowConfidence:
		return "low_confidence"
	case DecisionMissingRequiredField:
		return "missing_required_field"
	case DecisionOutsideBusinessHours:
		return "outside_business_hours"
	case DecisionError:
		return "error"
	default:
		return "unknown"
	}
}

// Decision is the admission outcome for one inbound message. Exactly one
// Decision is produced per message. Reason carries the operator-visible cause
// for Error, LowConfidence and MissingRequiredField outcomes.
type Decision struct {
	Kind   DecisionKind
	Reason string
}

func imported() Decision  { return Decision{Kind: DecisionImported} }
func duplicate() Decision { return Decision{Kind: DecisionDuplicate} }

func outsideBusinessHours() Decision { return Decision{Kind: DecisionOutsideBusinessHours} }

func lowConfidence(reason string) Decision {
	return Decision{Kind: DecisionLowConfidence, Reason: reason}
}

func missingField(field string) Decision {
	return Decision{Kind: DecisionMissingRequiredField, Reason: field}
}

func errorDecision(reason string) Decision {
	return Decision{Kind: DecisionError, Reason: reason}
}

// Provenance records where an imported contact came from.
type Provenance struct {
	Source      Channel
	MessageID   string
	FromAddress string
	RawText     string
	Confidence  int
	ReceivedAt  time.Time
}
