package api

// Session represents a reusable debugging setup defined in a YAML file:
// a named batch of debugger commands plus batch semantics.
type Session struct {
	Description string    `yaml:"description,omitempty"`
	StopOnError bool      `yaml:"stop_on_error,omitempty"`
	Commands    []Command `yaml:"commands"`
}

// BatchRequest converts the session into a batch request for POST /batch.
func (s *Session) BatchRequest() BatchRequest {
	return BatchRequest{
		Commands:    s.Commands,
		StopOnError: s.StopOnError,
	}
}
