package platform

// ActionConnectivityChange is broadcast by the platform whenever
// the connectivity of the device changes in any way.
const ActionConnectivityChange = "net.conn.CONNECTIVITY_CHANGE"

// Intent is a system-wide broadcast signal.
type Intent struct {
	Action string
	Extras map[string]string
}

// Filter selects the intents a Receiver is interested in.
type Filter struct {
	Actions []string
}

func NewFilter(actions ...string) Filter {
	return Filter{Actions: actions}
}

func (f Filter) Matches(intent Intent) bool {
	for _, action := range f.Actions {
		if action == intent.Action {
			return true
		}
	}
	return false
}

// Receiver handles broadcast intents.
// OnReceive is invoked on the platform's broadcast dispatch goroutine.
type Receiver interface {
	OnReceive(intent Intent)
}

// ReceiverFunc adapts a function to the Receiver interface.
// Function values are not comparable, so a ReceiverFunc must be registered
// through a pointer when it needs to be unregistered again.
type ReceiverFunc func(intent Intent)

func (f ReceiverFunc) OnReceive(intent Intent) {
	f(intent)
}
