package model

import "github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/events"

// copyEvents clones a pending-event slice so transition copies never share
// backing arrays with their source aggregate.
func copyEvents(src []events.DomainEvent) []events.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]events.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
