package uci

// State is the lifecycle state of an Adapter:
//
//	Spawned -> Handshaking -> Ready -> (Busy <-> Ready)* -> Stopped
//
// Any state may move to Stopped.
type State int

const (
	Spawned State = iota
	Handshaking
	Ready
	Busy
	Stopped
)

func (state State) String() string {
	switch state {
	case Spawned:
		return "spawned"
	case Handshaking:
		return "handshaking"
	case Ready:
		return "ready"
	case Busy:
		return "busy"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// HandshakeState tracks how far the uci/isready handshake has progressed.
type HandshakeState int

const (
	HandshakeNotStarted HandshakeState = iota
	HandshakeUciNegotiated
	HandshakeReady
)

func (state HandshakeState) String() string {
	switch state {
	case HandshakeNotStarted:
		return "not-started"
	case HandshakeUciNegotiated:
		return "uci-negotiated"
	case HandshakeReady:
		return "ready"
	default:
		return "unknown"
	}
}
