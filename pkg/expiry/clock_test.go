package expiry_test

import (
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleupdown/updown/pkg/expiry"
)

var (
	frozenNow = time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	seoul     = time.FixedZone("KST", 9*60*60)
)

func newFrozenClock(opts ...expiry.Option) *expiry.Clock {
	base := []expiry.Option{
		expiry.WithNow(func() time.Time { return frozenNow }),
		expiry.WithLocation(seoul),
	}
	return expiry.New(append(base, opts...)...)
}

// stamp renders now+d the way the backend does: UTC without a zone marker.
func stamp(d time.Duration) string {
	return frozenNow.Add(d).UTC().Format("2006-01-02T15:04:05.000")
}

func TestClock_IsUnlimited(t *testing.T) {
	t.Parallel()
	clock := newFrozenClock()

	t.Run("missing timestamp", func(t *testing.T) {
		t.Parallel()
		assert.True(t, clock.IsUnlimited(""))
	})

	t.Run("unparsable timestamp", func(t *testing.T) {
		t.Parallel()
		assert.True(t, clock.IsUnlimited("not-a-date"))
	})

	t.Run("more than ninety years ahead", func(t *testing.T) {
		t.Parallel()
		assert.True(t, clock.IsUnlimited(stamp(expiry.DefaultUnlimitedThreshold+time.Millisecond)))
		assert.True(t, clock.IsUnlimited(stamp(100*365*24*time.Hour)))
		assert.True(t, clock.IsUnlimited("9999-12-31T23:59:59"))
	})

	t.Run("exactly ninety years is not unlimited", func(t *testing.T) {
		t.Parallel()
		assert.False(t, clock.IsUnlimited(stamp(expiry.DefaultUnlimitedThreshold)))
	})

	t.Run("ordinary expiry", func(t *testing.T) {
		t.Parallel()
		assert.False(t, clock.IsUnlimited(stamp(time.Hour)))
		assert.False(t, clock.IsUnlimited(stamp(-time.Hour)))
	})

	t.Run("threshold is ninety 365-day years in milliseconds", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(90*365*24*60*60*1000), expiry.DefaultUnlimitedThreshold.Milliseconds())
	})

	t.Run("custom threshold", func(t *testing.T) {
		t.Parallel()
		c := newFrozenClock(expiry.WithUnlimitedThreshold(365 * 24 * time.Hour))
		assert.True(t, c.IsUnlimited(stamp(2*365*24*time.Hour)))
		assert.False(t, c.IsUnlimited(stamp(300*24*time.Hour)))
	})
}

func TestClock_IsExpiringSoon(t *testing.T) {
	t.Parallel()
	clock := newFrozenClock()

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"one millisecond ahead", stamp(time.Millisecond), true},
		{"one hour ahead", stamp(time.Hour), true},
		{"just under threshold", stamp(24*time.Hour - time.Millisecond), true},
		{"exactly threshold", stamp(24 * time.Hour), false},
		{"beyond threshold", stamp(25 * time.Hour), false},
		{"exactly now", stamp(0), false},
		{"in the past", stamp(-time.Minute), false},
		{"unlimited", stamp(100 * 365 * 24 * time.Hour), false},
		{"missing", "", false},
		{"unparsable", "not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clock.IsExpiringSoon(tt.raw))
		})
	}
}

func TestClock_IsExpiringWithin(t *testing.T) {
	t.Parallel()
	clock := newFrozenClock()

	assert.True(t, clock.IsExpiringWithin(stamp(90*time.Minute), 2*time.Hour))
	assert.False(t, clock.IsExpiringWithin(stamp(3*time.Hour), 2*time.Hour))
	assert.False(t, clock.IsExpiringWithin(stamp(time.Minute), 0))

	custom := newFrozenClock(expiry.WithSoonThreshold(time.Hour))
	assert.True(t, custom.IsExpiringSoon(stamp(30*time.Minute)))
	assert.False(t, custom.IsExpiringSoon(stamp(2*time.Hour)))
}

func TestClock_TimeLeft(t *testing.T) {
	t.Parallel()
	clock := newFrozenClock()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"missing is unlimited", "", "무제한"},
		{"far future is unlimited", stamp(100 * 365 * 24 * time.Hour), "무제한"},
		{"unparsable is unknown", "not-a-date", "알 수 없음"},
		{"exactly now is expired", stamp(0), "만료됨"},
		{"past is expired", stamp(-48 * time.Hour), "만료됨"},
		{"days and hours omit minutes", stamp(2*24*time.Hour + 3*time.Hour), "2일 3시간 남음"},
		{"days with remainder minutes", stamp(24*time.Hour + 59*time.Minute), "1일 0시간 남음"},
		{"hours and minutes", stamp(5*time.Hour + 7*time.Minute + 30*time.Second), "5시간 7분 남음"},
		{"minutes only", stamp(42*time.Minute + 59*time.Second), "42분 남음"},
		{"under a minute renders zero minutes", stamp(30 * time.Second), "0분 남음"},
		{"floor not round", stamp(59*time.Minute + 59*time.Second + 999*time.Millisecond), "59분 남음"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clock.TimeLeft(tt.raw))
		})
	}
}

func TestClock_FormatAbsolute(t *testing.T) {
	t.Parallel()

	t.Run("renders in display location", func(t *testing.T) {
		t.Parallel()
		clock := newFrozenClock()
		assert.Equal(t, "2024.01.05 18:00", clock.FormatAbsolute("2024-01-05T09:00:00"))
	})

	t.Run("UTC display", func(t *testing.T) {
		t.Parallel()
		clock := newFrozenClock(expiry.WithLocation(time.UTC))
		assert.Equal(t, "2024.01.05 09:00", clock.FormatAbsolute("2024-01-05T09:00:00"))
	})

	t.Run("zero padding and date rollover", func(t *testing.T) {
		t.Parallel()
		clock := newFrozenClock()
		assert.Equal(t, "2024.03.01 08:05", clock.FormatAbsolute("2024-02-29T23:05:00"))
	})

	t.Run("missing is empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", newFrozenClock().FormatAbsolute(""))
	})

	t.Run("unparsable is date error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "날짜 오류", newFrozenClock().FormatAbsolute("not-a-date"))
		assert.Equal(t, "날짜 오류", newFrozenClock().FormatAbsolute("   "))
	})
}

func TestClock_Classify(t *testing.T) {
	t.Parallel()
	clock := newFrozenClock()

	assert.Equal(t, expiry.Unlimited, clock.Classify(""))
	assert.Equal(t, expiry.Unlimited, clock.Classify("not-a-date"))
	assert.Equal(t, expiry.Unlimited, clock.Classify(stamp(100*365*24*time.Hour)))
	assert.Equal(t, expiry.ExpiringSoon, clock.Classify(stamp(time.Hour)))
	assert.Equal(t, expiry.ExpiringLater, clock.Classify(stamp(48*time.Hour)))
	assert.Equal(t, expiry.Expired, clock.Classify(stamp(0)))
	assert.Equal(t, expiry.Expired, clock.Classify(stamp(-time.Hour)))
}

func TestClock_Describe(t *testing.T) {
	t.Parallel()
	clock := newFrozenClock()

	st := clock.Describe(stamp(2*time.Hour + 15*time.Minute))
	assert.Equal(t, expiry.Valid, st.State)
	assert.Equal(t, expiry.ExpiringSoon, st.Bucket)
	assert.False(t, st.Unlimited)
	assert.True(t, st.ExpiringSoon)
	assert.Equal(t, 2*time.Hour+15*time.Minute, st.Remaining)
	assert.Equal(t, "2시간 15분 남음", st.TimeLeft)
	assert.Equal(t, "2024.01.05 20:15", st.ExpiresAt)

	far := clock.Describe("9999-12-31T23:59:59")
	assert.Equal(t, expiry.Unlimited, far.Bucket)
	assert.Greater(t, far.Remaining, time.Duration(0), "remaining must saturate, not overflow")

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bucket":"expiring_soon","unlimited":false,"expiring_soon":true,"time_left":"2시간 15분 남음","expires_at":"2024.01.05 20:15"}`, string(data))
}

func TestClock_ReadsNowOnEveryCall(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	now := frozenNow
	clock := expiry.New(expiry.WithNow(func() time.Time {
		calls.Add(1)
		return now.Add(time.Duration(calls.Load()-1) * time.Hour)
	}))

	raw := stamp(90 * time.Minute)
	assert.Equal(t, "1시간 30분 남음", clock.TimeLeft(raw))
	assert.Equal(t, "30분 남음", clock.TimeLeft(raw))
	assert.Equal(t, "만료됨", clock.TimeLeft(raw))
	assert.Equal(t, int64(3), calls.Load())
}

func TestClock_Defaults(t *testing.T) {
	t.Parallel()
	clock := expiry.New(expiry.WithNow(nil), expiry.WithLocation(nil), expiry.WithLabels(nil),
		expiry.WithSoonThreshold(-time.Hour), expiry.WithUnlimitedThreshold(0))

	ahead := time.Now().Add(2 * time.Hour).UTC().Format("2006-01-02T15:04:05")
	assert.True(t, clock.IsExpiringSoon(ahead))
	assert.False(t, clock.IsUnlimited(ahead))
	assert.Equal(t, "무제한", clock.TimeLeft(""))
}
