package collection

import "fmt"

// DeserializationError wraps a failure reading or decoding the collection
// itself (§7's "collection deserialization failure"), as distinct from the
// core's own SpecError/ExpressionError/UnknownPlaylist/PatternError/
// ConfigError taxonomy — this one originates outside the core, in whichever
// View implementation read the collection off disk or off the wire.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("collection deserialization failed: %s", e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
