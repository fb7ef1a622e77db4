package interp

// Classification is the terminal outcome emitted for one processed record.
// The two variants are closed: every record ends in exactly one of them,
// and no record is ever silently dropped.
type Classification interface {
	classification()
}

// Acceptance marks a record the remote operation handled successfully.
type Acceptance struct {
	Record any
}

// Rejection marks a record that failed, carrying the handler's reason, the
// underlying cause and the offending record.
type Rejection struct {
	Reason string
	Cause  error
	Record any
}

func (Acceptance) classification() {}
func (Rejection) classification()  {}
