package meeting

import (
	"fmt"
	"strings"
	"time"
)

// Accepted layouts for request start/end values. Values without an offset are
// read in the request's time zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Request asks for a bot to join MeetURL between StartTime and EndTime.
type Request struct {
	MeetURL     string `json:"meetUrl" yaml:"meetUrl"`
	UUID        string `json:"uuid" yaml:"uuid"`
	StartTime   string `json:"startTime" yaml:"startTime"`
	EndTime     string `json:"endTime" yaml:"endTime"`
	TimeZone    string `json:"timeZone" yaml:"timeZone"`
	CallbackURL string `json:"callbackUrl" yaml:"callbackUrl"`
}

// Validate checks that every field is present.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.MeetURL) == "" {
		missing = append(missing, "meetUrl")
	}
	if strings.TrimSpace(r.UUID) == "" {
		missing = append(missing, "uuid")
	}
	if strings.TrimSpace(r.StartTime) == "" {
		missing = append(missing, "startTime")
	}
	if strings.TrimSpace(r.EndTime) == "" {
		missing = append(missing, "endTime")
	}
	if strings.TrimSpace(r.TimeZone) == "" {
		missing = append(missing, "timeZone")
	}
	if strings.TrimSpace(r.CallbackURL) == "" {
		missing = append(missing, "callbackUrl")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Window resolves the start and end instants and checks them against now.
// A start up to grace in the past is still accepted.
func (r Request) Window(now time.Time, grace time.Duration) (time.Time, time.Time, error) {
	if err := r.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	loc, err := time.LoadLocation(strings.TrimSpace(r.TimeZone))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid timeZone %q", ErrValidation, r.TimeZone)
	}

	start, err := parseLocal(r.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid startTime: %v", ErrValidation, err)
	}
	end, err := parseLocal(r.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid endTime: %v", ErrValidation, err)
	}

	if start.Before(now.Add(-grace)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startTime %s is in the past", ErrValidation, start.Format(time.RFC3339))
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endTime must be after startTime", ErrValidation)
	}

	return start, end, nil
}

func parseLocal(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date-time %q", value)
}
