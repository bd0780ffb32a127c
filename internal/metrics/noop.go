package metrics

import "time"

// Noop discards every event.
type Noop struct{}

func (Noop) RecordTag(string, string)                 {}
func (Noop) RecordFetch(string, time.Duration, error) {}
func (Noop) RecordCacheLookup(string, bool)           {}
func (Noop) RecordRun(string, time.Duration)          {}
func (Noop) RecordRows(string, int)                   {}
