package expiry

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultUnlimitedThreshold is 90 years of 365 days. Remaining times above
	// it are treated as "never expires"; the backend stores unlimited uploads
	// roughly 100 years out.
	DefaultUnlimitedThreshold = 90 * 365 * 24 * time.Hour

	// DefaultSoonThreshold is the default "expiring soon" window.
	DefaultSoonThreshold = 24 * time.Hour
)

const (
	msPerMinute = int64(60 * 1000)
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the source of the current time. Nil is ignored.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the location FormatAbsolute renders in. Nil is ignored.
func WithLocation(loc *time.Location) Option {
	return func(c *Clock) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithUnlimitedThreshold overrides the remaining time above which a file
// counts as non-expiring. Non-positive values are ignored.
func WithUnlimitedThreshold(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.unlimitedMs = d.Milliseconds()
		}
	}
}

// WithSoonThreshold overrides the "expiring soon" window. Non-positive
// values are ignored.
func WithSoonThreshold(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.soonMs = d.Milliseconds()
		}
	}
}

// WithLabels sets the display strings. Nil is ignored.
func WithLabels(l Labels) Option {
	return func(c *Clock) {
		if l != nil {
			c.labels = l
		}
	}
}

// Clock classifies and renders expiry timestamps relative to the current
// time. It is immutable and safe for concurrent use.
type Clock struct {
	now         func() time.Time
	loc         *time.Location
	unlimitedMs int64
	soonMs      int64
	labels      Labels
}

// New returns a Clock with the given options applied over the defaults.
func New(opts ...Option) *Clock {
	c := &Clock{
		now:         time.Now,
		loc:         time.Local,
		unlimitedMs: DefaultUnlimitedThreshold.Milliseconds(),
		soonMs:      DefaultSoonThreshold.Milliseconds(),
		labels:      KoreanLabels{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status bundles every presentation value for one timestamp, computed from a
// single read of the current time.
type Status struct {
	State        State         `json:"-"`
	Bucket       Bucket        `json:"bucket"`
	Unlimited    bool          `json:"unlimited"`
	ExpiringSoon bool          `json:"expiring_soon"`
	Remaining    time.Duration `json:"-"`
	TimeLeft     string        `json:"time_left"`
	ExpiresAt    string        `json:"expires_at"`
}

// reading is a timestamp evaluated against one instant of "now".
type reading struct {
	inst        Instant
	remainingMs int64
}

func (c *Clock) read(raw string) reading {
	inst := Parse(raw)
	r := reading{inst: inst}
	if inst.Valid() {
		r.remainingMs = inst.t.UnixMilli() - c.now().UnixMilli()
	}
	return r
}

func (c *Clock) unlimited(r reading) bool {
	if !r.inst.Valid() {
		return true
	}
	return r.remainingMs > c.unlimitedMs
}

func (c *Clock) within(r reading, windowMs int64) bool {
	if c.unlimited(r) || !r.inst.Valid() {
		return false
	}
	return r.remainingMs > 0 && r.remainingMs < windowMs
}

func (c *Clock) bucket(r reading) Bucket {
	switch {
	case c.unlimited(r):
		return Unlimited
	case r.remainingMs <= 0:
		return Expired
	case r.remainingMs < c.soonMs:
		return ExpiringSoon
	default:
		return ExpiringLater
	}
}

func (c *Clock) timeLeft(r reading) string {
	if r.inst.State() == Invalid {
		return c.labels.Unknown()
	}
	if c.unlimited(r) {
		return c.labels.Unlimited()
	}
	ms := r.remainingMs
	if ms <= 0 {
		return c.labels.Expired()
	}
	days := ms / msPerDay
	hours := (ms % msPerDay) / msPerHour
	minutes := (ms % msPerHour) / msPerMinute
	switch {
	case days > 0:
		return c.labels.DaysHoursLeft(days, hours)
	case hours > 0:
		return c.labels.HoursMinutesLeft(hours, minutes)
	default:
		return c.labels.MinutesLeft(minutes)
	}
}

func (c *Clock) absolute(inst Instant) string {
	switch inst.State() {
	case Missing:
		return ""
	case Invalid:
		return c.labels.DateError()
	}
	t := inst.t.In(c.loc)
	return fmt.Sprintf("%d.%02d.%02d %02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// IsUnlimited reports whether raw denotes a non-expiring file: the timestamp
// is missing or unparsable, or lies further ahead than the unlimited
// threshold.
func (c *Clock) IsUnlimited(raw string) bool {
	return c.unlimited(c.read(raw))
}

// IsExpiringSoon reports whether raw expires within the configured window.
// Expired, unlimited and unparsable timestamps are never "soon".
func (c *Clock) IsExpiringSoon(raw string) bool {
	return c.within(c.read(raw), c.soonMs)
}

// IsExpiringWithin is IsExpiringSoon with an explicit window.
// A non-positive window never matches.
func (c *Clock) IsExpiringWithin(raw string, window time.Duration) bool {
	return c.within(c.read(raw), window.Milliseconds())
}

// Classify returns the expiry bucket of raw.
func (c *Clock) Classify(raw string) Bucket {
	return c.bucket(c.read(raw))
}

// TimeLeft renders the remaining time of raw using the two coarsest units:
// days and hours, hours and minutes, or minutes alone. Sentinels are
// returned for unparsable, unlimited and expired timestamps.
func (c *Clock) TimeLeft(raw string) string {
	return c.timeLeft(c.read(raw))
}

// FormatAbsolute renders raw as "YYYY.MM.DD HH:MM" in the clock's display
// location. Missing input renders as "", unparsable input as the DateError
// label.
func (c *Clock) FormatAbsolute(raw string) string {
	return c.absolute(Parse(raw))
}

// Describe computes all presentation values for raw at once.
func (c *Clock) Describe(raw string) Status {
	r := c.read(raw)
	return Status{
		State:        r.inst.State(),
		Bucket:       c.bucket(r),
		Unlimited:    c.unlimited(r),
		ExpiringSoon: c.within(r, c.soonMs),
		Remaining:    msToDuration(r.remainingMs),
		TimeLeft:     c.timeLeft(r),
		ExpiresAt:    c.absolute(r.inst),
	}
}

// msToDuration converts milliseconds to a Duration, saturating instead of
// overflowing for instants centuries away.
func msToDuration(ms int64) time.Duration {
	const limit = math.MaxInt64 / int64(time.Millisecond)
	switch {
	case ms > limit:
		return time.Duration(math.MaxInt64)
	case ms < -limit:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ms) * time.Millisecond
}
