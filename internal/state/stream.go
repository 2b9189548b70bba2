package state

// Status is the lifecycle position of one data stream.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Errored
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Stream holds exactly one of: nothing (Idle, Loading), a snapshot (Loaded)
// or an error message (Errored).
type Stream[T any] struct {
	Status Status `json:"status"`
	Data   *T     `json:"data,omitempty"`
	Err    string `json:"error,omitempty"`
}

func (s *Stream[T]) Begin() {
	*s = Stream[T]{Status: Loading}
}

func (s *Stream[T]) Succeed(v *T) {
	*s = Stream[T]{Status: Loaded, Data: v}
}

func (s *Stream[T]) Fail(msg string) {
	*s = Stream[T]{Status: Errored, Err: msg}
}

func (s *Stream[T]) Reset() {
	*s = Stream[T]{}
}

// Settle ends a Loading stream that never completed.
func (s *Stream[T]) Settle() {
	if s.Status == Loading {
		s.Reset()
	}
}

func (s Stream[T]) IsLoading() bool { return s.Status == Loading }
