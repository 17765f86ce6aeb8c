package domain

import "time"

// DefaultWindow is used when no time-unit argument is given.
const DefaultWindow = 24 * time.Hour

// Window is a validated summarization time span built from the four
// user-supplied unit arguments. The defaulting rule lives here and nowhere
// else: all units zero means the last 24 hours.
type Window struct {
	span time.Duration
}

// NewWindow constructs a Window from hours/days/months/years. Months count as
// 30 days and years as 365 days. Any negative unit is an invalid request.
func NewWindow(hours, days, months, years int) (Window, error) {
	if hours < 0 || days < 0 || months < 0 || years < 0 {
		return Window{}, ErrInvalidRequest
	}

	span := time.Duration(hours)*time.Hour +
		time.Duration(days)*24*time.Hour +
		time.Duration(months)*30*24*time.Hour +
		time.Duration(years)*365*24*time.Hour

	if span == 0 {
		span = DefaultWindow
	}

	return Window{span: span}, nil
}

// Duration returns the window's span.
func (w Window) Duration() time.Duration {
	return w.span
}

// Start returns the cutoff instant for a window ending at now.
func (w Window) Start(now time.Time) time.Time {
	return now.Add(-w.span)
}
