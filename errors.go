package ringbus

import "errors"

// ErrStopped is returned by AsyncBus.AsyncRead once the bus has been stopped
// and no frame remains pending.
var ErrStopped = errors.New("ringbus: bus stopped")

// ErrUnknownID is the panic payload used by MustFromU16 when asked to
// convert a discriminant that was never registered. This mirrors
// messenger_id_enum!'s from_u16, which treats an unknown wire value as a
// programmer error rather than something callers recover from.
var ErrUnknownID = errors.New("ringbus: unknown identifier")
