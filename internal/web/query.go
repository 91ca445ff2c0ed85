package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/domain"
)

// parseTimelineQuery reads a strict TimelineRequest from the query string:
// granularity, q, now, from, to, expand (repeatable, comma separated),
// expandAll and clamp.
func parseTimelineQuery(r *http.Request) (app.TimelineRequest, *app.TimelineError) {
	q := r.URL.Query()
	req := app.TimelineRequest{Keyword: q.Get("q"), Strict: true}

	if raw := q.Get("granularity"); raw != "" {
		g, terr := parseGranularity(raw)
		if terr != nil {
			return req, terr
		}
		req.Granularity = g
	}

	var terr *app.TimelineError
	if req.Now, terr = optionalDate(q, "now"); terr != nil {
		return req, terr
	}
	if req.From, terr = optionalDate(q, "from"); terr != nil {
		return req, terr
	}
	if req.To, terr = optionalDate(q, "to"); terr != nil {
		return req, terr
	}

	for _, v := range q["expand"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.Expanded = append(req.Expanded, id)
			}
		}
	}

	var err error
	if req.ExpandAll, err = optionalBool(q, "expandAll"); err != nil {
		return req, &app.TimelineError{Code: codeBadRequest, Message: err.Error()}
	}
	if req.Clamp, err = optionalBool(q, "clamp"); err != nil {
		return req, &app.TimelineError{Code: codeBadRequest, Message: err.Error()}
	}
	return req, nil
}

func parseGranularity(raw string) (domain.Granularity, *app.TimelineError) {
	if raw == "" {
		return domain.GranularityMonths, nil
	}
	g, err := domain.ParseGranularity(raw)
	if err != nil {
		return "", &app.TimelineError{Code: app.TimelineErrInvalidGranularity, Message: err.Error()}
	}
	return g, nil
}

func optionalDate(q url.Values, name string) (*time.Time, *app.TimelineError) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return nil, &app.TimelineError{Code: app.TimelineErrInvalidDate, Message: fmt.Sprintf("%s: %v", name, err)}
	}
	return &t, nil
}

func requiredDate(q url.Values, name string) (time.Time, *app.TimelineError) {
	t, terr := optionalDate(q, name)
	if terr != nil {
		return time.Time{}, terr
	}
	if t == nil {
		return time.Time{}, &app.TimelineError{Code: app.TimelineErrInvalidDate, Message: name + " is required"}
	}
	return *t, nil
}

func optionalBool(q url.Values, name string) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: want true or false, got %q", name, raw)
	}
	return b, nil
}

func optionalInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: want a non-negative integer, got %q", name, raw)
	}
	return n, nil
}
