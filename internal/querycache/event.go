package querycache

// EventType — что произошло с записью.
type EventType string

const (
	EventRefreshed   EventType = "refreshed"
	EventInvalidated EventType = "invalidated"
	EventFailed      EventType = "failed"
	EventCleared     EventType = "cleared"
)

// Event — уведомление подписчика.
type Event struct {
	Type EventType
	Key  Key
	Err  error
}

type subscriber struct {
	sel Key
	fn  func(Event)
}

type delivery struct {
	fn func(Event)
	ev Event
}

func dispatch(ds []delivery) {
	for _, d := range ds {
		d.fn(d.ev)
	}
}
