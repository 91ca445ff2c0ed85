package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gantt/internal/app"
	"github.com/alexanderramin/gantt/internal/timeline"
)

func TestTimelineError_MapsSentinels(t *testing.T) {
	tests := []struct {
		err  error
		code app.TimelineErrorCode
	}{
		{fmt.Errorf("%w %q", timeline.ErrUnknownGranularity, "days"), app.TimelineErrInvalidGranularity},
		{fmt.Errorf("%w: end before start", timeline.ErrInvalidRange), app.TimelineErrInvalidRange},
		{fmt.Errorf("%w: 300 weeks", timeline.ErrTooManyColumns), app.TimelineErrTooManyColumns},
	}
	for _, tt := range tests {
		got := timelineError(tt.err)
		assert.Equal(t, tt.code, got.Code)
		assert.Equal(t, tt.err.Error(), got.Message)
	}
}

func TestNowOr(t *testing.T) {
	override := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, override, nowOr(fixedClock, &override))
	assert.Equal(t, testNow, nowOr(fixedClock, nil))
	assert.WithinDuration(t, time.Now(), nowOr(nil, nil), time.Minute)
}

func TestFormatValidationErrors(t *testing.T) {
	err := formatValidationErrors([]error{errors.New("first"), errors.New("second")})
	require.ErrorIs(t, err, ErrInvalidPayload)
	assert.Equal(t, "import validation failed (2 errors):\n  - first\n  - second", err.Error())
}
