package main

import (
	"log"

	"ringbus"
)

// handlerAState and handlerBState hold nothing beyond their lifecycle
// hooks; the ping-pong state lives entirely in the messages themselves.
// This mirrors the serde_bincode example: HandlerA kicks things off from
// OnStart, then the two handlers volley MessageA/MessageB back and forth
// until the value saturates.
type handlerAState struct{ ringbus.NoopHandler }
type handlerBState struct{ ringbus.NoopHandler }
type handlerCState struct{ ringbus.NoopHandler }

func (handlerAState) OnStart(w ringbus.Writer) {
	ringbus.SendEncoded(w, handlerA, messageB, msgB{OtherVal: 0})
}

// reactBToA runs on handlerB whenever handlerA publishes a MessageB: bounce
// a MessageA back until the ping-pong saturates at 10.
func reactBToA(payload []byte, w ringbus.Writer) {
	m := decodeMsgB(payload)
	if m.OtherVal < 10 {
		ringbus.SendEncoded(w, handlerB, messageA, msgA{Val: uint8(m.OtherVal) + 1})
	}
}

// reactAToB runs on handlerA whenever handlerB publishes a MessageA.
func reactAToB(payload []byte, w ringbus.Writer) {
	m := decodeMsgA(payload)
	if m.Val < 10 {
		ringbus.SendEncoded(w, handlerA, messageB, msgB{OtherVal: uint16(m.Val) + 1})
	}
}

// reactCLog is the fan-out receiver from the two-worker scenario: a second
// worker's handlerC subscribes to the same (handlerB, messageA) traffic
// handlerA reacts to, purely to observe it.
func reactCLog(payload []byte, _ ringbus.Writer) {
	m := decodeMsgA(payload)
	log.Printf("handlerC observed messageA{Val: %d}", m.Val)
}
