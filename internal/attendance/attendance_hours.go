package attendance

import "time"

// Session is a matched IN/OUT pair.
type Session struct {
	In  time.Time
	Out time.Time
}

func (s Session) Hours() float64 {
	return s.Out.Sub(s.In).Hours()
}

// PairSessions walks records in the order given. An IN replaces any unmatched
// earlier IN, an OUT without a pending IN is dropped, and other types are
// skipped without touching the pending IN.
func PairSessions(records []Attendance) []Session {
	var (
		sessions []Session
		pending  *time.Time
	)

	for i := range records {
		switch records[i].Type {
		case SwipeIn:
			ts := records[i].Timestamp
			pending = &ts
		case SwipeOut:
			if pending == nil {
				continue
			}
			sessions = append(sessions, Session{In: *pending, Out: records[i].Timestamp})
			pending = nil
		}
	}

	return sessions
}

// CalculateHours sums the worked hours of every matched session.
func CalculateHours(records []Attendance) float64 {
	var total float64
	for _, s := range PairSessions(records) {
		total += s.Hours()
	}
	return total
}
