package log

// A Contexter contributes fields to every emitted entry. The emulation loop
// registers one so that entries carry the current frame and cycle counters.
type Contexter interface {
	AddLogContext(e *EntryZ)
}

var contexts []Contexter

func AddContext(c Contexter) {
	contexts = append(contexts, c)
}

func ClearContexts() {
	contexts = contexts[:0]
}
