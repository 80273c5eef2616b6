package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Example event implementations
type TestFeaturesExtractedEvent struct {
	Customers int
}

func (e TestFeaturesExtractedEvent) EventType() EventType {
	return FeaturesExtracted
}

type TestSegmentsAssignedEvent struct {
	Clusters int
	Seed     int64
}

func (e TestSegmentsAssignedEvent) EventType() EventType {
	return SegmentsAssigned
}

func TestEventTypeEnum(t *testing.T) {
	t.Run("EventType.String() returns correct values", func(t *testing.T) {
		// Arrange & Act & Assert
		assert.Equal(t, "FeaturesExtracted", FeaturesExtracted.String())
		assert.Equal(t, "SegmentsAssigned", SegmentsAssigned.String())
		assert.Equal(t, "Unknown", EventType(999).String())
	})
}

func TestBusWithEnumEventTypes(t *testing.T) {
	t.Run("can subscribe to and publish events using enum types", func(t *testing.T) {
		// Arrange
		bus := NewBus()
		var receivedEvents []Event

		handler := func(e Event) {
			receivedEvents = append(receivedEvents, e)
		}

		bus.Subscribe(FeaturesExtracted, handler)
		bus.Subscribe(SegmentsAssigned, handler)

		extractedEvent := TestFeaturesExtractedEvent{Customers: 100}
		assignedEvent := TestSegmentsAssignedEvent{Clusters: 4, Seed: 42}

		// Act
		bus.Publish(extractedEvent)
		bus.Publish(assignedEvent)

		// Assert
		assert.Len(t, receivedEvents, 2)
		assert.Equal(t, FeaturesExtracted, receivedEvents[0].EventType())
		assert.Equal(t, SegmentsAssigned, receivedEvents[1].EventType())
	})

	t.Run("handlers only receive events they subscribed to", func(t *testing.T) {
		// Arrange
		bus := NewBus()
		var extractedEvents []Event
		var assignedEvents []Event

		extractedHandler := func(e Event) {
			extractedEvents = append(extractedEvents, e)
		}

		assignedHandler := func(e Event) {
			assignedEvents = append(assignedEvents, e)
		}

		bus.Subscribe(FeaturesExtracted, extractedHandler)
		bus.Subscribe(SegmentsAssigned, assignedHandler)

		extractedEvent := TestFeaturesExtractedEvent{Customers: 100}
		assignedEvent := TestSegmentsAssignedEvent{Clusters: 4, Seed: 42}

		// Act
		bus.Publish(extractedEvent)
		bus.Publish(assignedEvent)

		// Assert
		assert.Len(t, extractedEvents, 1)
		assert.Len(t, assignedEvents, 1)
		assert.Equal(t, FeaturesExtracted, extractedEvents[0].EventType())
		assert.Equal(t, SegmentsAssigned, assignedEvents[0].EventType())
	})
}
