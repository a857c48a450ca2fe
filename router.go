package ringbus

// routeKey identifies a (handler, message) pair a frame can be routed on.
type routeKey struct {
	source    uint16
	messageID uint16
}

// Reaction is invoked with a frame's raw payload once it's been routed to a
// subscribing handler.
type Reaction func(payload []byte, w Writer)

// Router is a compile-time-shaped, runtime-built dispatch table: the
// generated match arms a declarative macro would produce in a language
// with macros become a plain map here, keyed by (source handler ID,
// message ID) the way the frame header already encodes them. An unmatched
// (source, message) pair is a silent no-op — a handler simply wasn't
// subscribed to that traffic, not a programmer error, unlike
// MustFromU16's panic path.
type Router struct {
	routes map[routeKey][]Reaction
}

// NewRouter returns an empty Router ready for AddRoute calls.
func NewRouter() *Router {
	return &Router{routes: make(map[routeKey][]Reaction)}
}

// AddRoute registers fn to run whenever a frame from source carrying
// messageID is read. Multiple handlers may subscribe to the same pair; they
// run in registration order.
func (r *Router) AddRoute(source HandlerID, messageID MessageID, fn Reaction) {
	key := routeKey{source: uint16(source), messageID: uint16(messageID)}
	r.routes[key] = append(r.routes[key], fn)
}

// Route dispatches a frame to every handler subscribed to its (source,
// message) pair.
func (r *Router) Route(header Header, payload []byte, w Writer) {
	key := routeKey{source: header.Source, messageID: header.MessageID}
	for _, fn := range r.routes[key] {
		fn(payload, w)
	}
}
