package wizard

import "sync"

type EventType string

const (
	EventScrollTop EventType = "scrollTop"
	EventAlert     EventType = "alert"
	EventProgress  EventType = "progress"
)

// Event is a UI side effect queued for the client.
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message,omitempty"`
}

// EventNotifier buffers events until the transport drains them.
type EventNotifier struct {
	mu     sync.Mutex
	events []Event
}

func NewEventNotifier() *EventNotifier {
	return &EventNotifier{}
}

func (n *EventNotifier) ScrollToTop() {
	n.push(Event{Type: EventScrollTop})
}

func (n *EventNotifier) Alert(message string) {
	n.push(Event{Type: EventAlert, Message: message})
}

func (n *EventNotifier) Progress(status string) {
	n.push(Event{Type: EventProgress, Message: status})
}

func (n *EventNotifier) push(e Event) {
	n.mu.Lock()
	n.events = append(n.events, e)
	n.mu.Unlock()
}

// Drain returns the queued events and empties the queue.
func (n *EventNotifier) Drain() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.events
	n.events = nil
	return out
}

type nopNotifier struct{}

func (nopNotifier) ScrollToTop()    {}
func (nopNotifier) Alert(string)    {}
func (nopNotifier) Progress(string) {}
