package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/wfh-engine/schedule"
)

func TestWindowAround_Bounds(t *testing.T) {
	// GIVEN: Today is 2024-10-01
	// THEN: The window spans 2024-08-01 through 2025-01-01 inclusive
	today := schedule.NewDate(2024, time.October, 1)
	w := schedule.WindowAround(today)

	assert.Equal(t, "2024-08-01", w.Start.String())
	assert.Equal(t, "2025-01-01", w.End.String())
}

func TestWindowAround_ClampsMonthEnd(t *testing.T) {
	// GIVEN: Today is 2025-03-31
	// THEN: 2 months back lands on January 31 (exists) and 3 months
	//       forward clamps to June 30 (June has no 31st)
	today := schedule.NewDate(2025, time.March, 31)
	w := schedule.WindowAround(today)

	assert.Equal(t, "2025-01-31", w.Start.String())
	assert.Equal(t, "2025-06-30", w.End.String(), "June has 30 days, forward bound clamps")
}

func TestCheckDate_InclusiveAtBothEnds(t *testing.T) {
	today := schedule.NewDate(2024, time.October, 1)

	// Exactly on the bounds is allowed
	assert.NoError(t, schedule.CheckDate(schedule.NewDate(2024, time.August, 1), today))
	assert.NoError(t, schedule.CheckDate(schedule.NewDate(2025, time.January, 1), today))
	assert.NoError(t, schedule.CheckDate(today, today))
}

func TestCheckDate_OneDayBeyondEitherBoundFails(t *testing.T) {
	today := schedule.NewDate(2024, time.October, 1)

	err := schedule.CheckDate(schedule.NewDate(2024, time.July, 31), today)
	assert.Error(t, err)
	assert.Equal(t, schedule.MsgDateOutOfWindow, err.Error())
	assert.True(t, errors.Is(err, schedule.ErrValidation))

	err = schedule.CheckDate(schedule.NewDate(2025, time.January, 2), today)
	assert.Error(t, err)
	assert.Equal(t, schedule.MsgDateOutOfWindow, err.Error())
}

func TestCheckRange_BothBoundsMustPass(t *testing.T) {
	today := schedule.NewDate(2024, time.October, 1)
	inside := schedule.NewDate(2024, time.November, 1)
	outside := schedule.NewDate(2025, time.February, 1)

	assert.NoError(t, schedule.CheckRange(inside, schedule.NewDate(2024, time.December, 1), today))

	// End outside
	err := schedule.CheckRange(inside, outside, today)
	assert.Error(t, err)
	assert.Equal(t, schedule.MsgRangeOutOfWindow, err.Error())

	// Start outside
	err = schedule.CheckRange(schedule.NewDate(2024, time.July, 1), inside, today)
	assert.Error(t, err)
	assert.Equal(t, schedule.MsgRangeOutOfWindow, err.Error(),
		"recurring range failures use the range-specific message")
}
