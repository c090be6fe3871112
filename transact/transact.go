// Package transact provides the diagnostic callback contract external
// collaborators (an editor shell, a CLI) pass into archive-level
// operations: a stream of leveled messages scoped to a domain, plus a
// preset-name hint (§6 external interfaces).
package transact

// IOMessageClass is the severity of one diagnostic reported through a
// Transaction.
type IOMessageClass int

const (
	Information IOMessageClass = iota
	Warning
	Error
)

func (c IOMessageClass) String() string {
	switch c {
	case Information:
		return "Information"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Message is one diagnostic dispatched through a Transaction's
// callback: a severity, the domain it originated from (e.g. a
// material or mesh name), and a human-readable body.
type Message struct {
	Class  IOMessageClass
	Domain string
	Body   string
}

// Callback receives every Message a Transaction reports during an
// archive operation.
type Callback func(Message)

// Transaction carries the host-provided diagnostic callback and a
// preset-name hint through a single archive read or write. It is not
// reused across operations (§5: instantiated per archive write,
// discarded on completion).
type Transaction struct {
	Callback   Callback
	PresetName string

	// Errored is set once any Error-class message has been reported,
	// so callers can check it after a write completes without
	// threading a bool through every sub-writer.
	Errored bool
}

// New returns a Transaction that dispatches to cb. A nil cb is legal;
// messages are then dropped except for Errored bookkeeping.
func New(presetName string, cb Callback) *Transaction {
	return &Transaction{Callback: cb, PresetName: presetName}
}

// Report dispatches msg to the callback and updates Errored.
func (t *Transaction) Report(msg Message) {
	if t == nil {
		return
	}
	if msg.Class == Error {
		t.Errored = true
	}
	if t.Callback != nil {
		t.Callback(msg)
	}
}

// Info reports an Information-class message.
func (t *Transaction) Info(domain, body string) {
	t.Report(Message{Class: Information, Domain: domain, Body: body})
}

// Warn reports a Warning-class message (§7: non-fatal, does not abort
// the operation).
func (t *Transaction) Warn(domain, body string) {
	t.Report(Message{Class: Warning, Domain: domain, Body: body})
}

// Err reports an Error-class message.
func (t *Transaction) Err(domain, body string) {
	t.Report(Message{Class: Error, Domain: domain, Body: body})
}
