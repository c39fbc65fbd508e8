package gateway

import "fmt"

// InvalidSpecError is returned by Builder.Build for every static defect
// spec.md section 4.7.1 enumerates: an empty specification, a node
// missing its type or name, an unknown node type, a dangling channel
// endpoint, a channel type mismatch, or a cycle.
type InvalidSpecError struct {
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("gateway: invalid spec: %s", e.Reason)
}
