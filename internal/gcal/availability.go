package gcal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	daycal "github.com/avelis/dayplan/internal/calendar"
	dperrors "github.com/avelis/dayplan/internal/errors"
)

// Service fetches availability for one calendar.
type Service struct {
	srv        *calendar.Service
	calendarID string
}

// NewService builds an authenticated Service for the given calendar ID.
// Any failure is reported as calendar unavailability so the caller can
// fall back to planning without windows.
func NewService(ctx context.Context, calendarID string) (*Service, error) {
	client, err := httpClient(ctx)
	if err != nil {
		return nil, unavailable(err)
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, unavailable(err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}
	return &Service{srv: srv, calendarID: calendarID}, nil
}

// FreeWindows queries busy times for the given date between workStart and
// workEnd (HH:MM) and inverts them into free windows.
func (s *Service) FreeWindows(ctx context.Context, date time.Time, workStart, workEnd string) ([]daycal.Window, error) {
	dayStart, err := daycal.CutoffOn(date, workStart)
	if err != nil {
		return nil, err
	}
	dayEnd, err := daycal.CutoffOn(date, workEnd)
	if err != nil {
		return nil, err
	}
	if !dayStart.Before(dayEnd) {
		return nil, dperrors.ValidationError{Field: "work hours", Reason: fmt.Sprintf("%s is not before %s", workStart, workEnd)}
	}

	req := &calendar.FreeBusyRequest{
		TimeMin: dayStart.Format(time.RFC3339),
		TimeMax: dayEnd.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: s.calendarID}},
	}
	resp, err := s.srv.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, unavailable(err)
	}

	cal, ok := resp.Calendars[s.calendarID]
	if !ok {
		return nil, unavailable(fmt.Errorf("calendar %q missing from freebusy response", s.calendarID))
	}

	busy, err := parseBusy(cal.Busy)
	if err != nil {
		return nil, unavailable(err)
	}
	return invertBusy(busy, dayStart, dayEnd), nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", dperrors.ErrCalendarUnavailable, err)
}

// parseBusy converts the API's busy periods into windows.
func parseBusy(periods []*calendar.TimePeriod) ([]daycal.Window, error) {
	var busy []daycal.Window
	for _, p := range periods {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("bad busy start %q: %w", p.Start, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("bad busy end %q: %w", p.End, err)
		}
		busy = append(busy, daycal.Window{Start: start, End: end})
	}
	return busy, nil
}

// invertBusy turns busy periods inside [dayStart, dayEnd) into the free
// windows between them. Overlapping or out-of-order busy periods are merged
// by walking a single cursor forward.
func invertBusy(busy []daycal.Window, dayStart, dayEnd time.Time) []daycal.Window {
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	var free []daycal.Window
	cursor := dayStart
	for _, b := range busy {
		if !b.Start.Before(dayEnd) {
			break // All remaining busy periods lie past the day
		}
		if !b.End.After(cursor) {
			continue // Entirely behind the cursor
		}
		if b.Start.After(cursor) {
			free = append(free, daycal.Window{Start: cursor, End: b.Start})
		}
		cursor = b.End
		if !cursor.Before(dayEnd) {
			return free
		}
	}
	free = append(free, daycal.Window{Start: cursor, End: dayEnd})
	return free
}
