package infra

// EventType represents the type of event in the system
type EventType int

const (
	TransactionsLoaded EventType = iota
	FeaturesExtracted
	SegmentsAssigned
	SegmentsLabeled
	RecommendationsIssued
)

// String returns the string representation of the EventType
func (et EventType) String() string {
	switch et {
	case TransactionsLoaded:
		return "TransactionsLoaded"
	case FeaturesExtracted:
		return "FeaturesExtracted"
	case SegmentsAssigned:
		return "SegmentsAssigned"
	case SegmentsLabeled:
		return "SegmentsLabeled"
	case RecommendationsIssued:
		return "RecommendationsIssued"
	default:
		return "Unknown"
	}
}

type Event interface{ EventType() EventType }
type Handler func(Event)
type Bus struct{ subs map[EventType][]Handler }

func NewBus() *Bus { return &Bus{subs: map[EventType][]Handler{}} }
func (b *Bus) Publish(e Event) {
	for _, h := range b.subs[e.EventType()] {
		h(e)
	}
}
func (b *Bus) Subscribe(evt EventType, h Handler) { b.subs[evt] = append(b.subs[evt], h) }
