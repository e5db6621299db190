package handlers

import (
	"errors"
	"net/url"
	"strconv"

	domainspots "github.com/preston-bernstein/iss-spotter/internal/domain/spots"
)

var (
	errDayTimeParams = errors.New("night filter requires sunrise and sunset unix timestamps")
	errDayTimeOrder  = errors.New("sunset must be after sunrise")
	errNightParam    = errors.New("night must be true or false")
)

// parseDayTime reads ?night=true&sunrise=<unix>&sunset=<unix>. A nil result means no filter.
func parseDayTime(q url.Values) (*domainspots.DayTime, error) {
	raw := q.Get("night")
	if raw == "" {
		return nil, nil
	}
	night, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errNightParam
	}
	if !night {
		return nil, nil
	}

	sunrise, err := strconv.ParseInt(q.Get("sunrise"), 10, 64)
	if err != nil {
		return nil, errDayTimeParams
	}
	sunset, err := strconv.ParseInt(q.Get("sunset"), 10, 64)
	if err != nil {
		return nil, errDayTimeParams
	}
	if sunset <= sunrise {
		return nil, errDayTimeOrder
	}

	day := domainspots.NewDayTime(sunrise, sunset)
	return &day, nil
}
