package timeline

import (
	"time"

	"github.com/tessro/printq/internal/core"
)

// Banner returns the "queue completes" time shown above the queue. It is
// only shown when something is running or queued. The projection's
// completion wins; with an empty queue the current task's end time is used.
// With neither there is no banner.
func Banner(current *core.CurrentTask, p Projection) (time.Time, bool) {
	if end, ok := p.Completion(); ok {
		return end, true
	}
	if current != nil {
		return current.EndTime, true
	}
	return time.Time{}, false
}
