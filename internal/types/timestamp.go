package types

import (
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"

	"github.com/chaisql/ordkey/internal/encoding"
)

const (
	// TicksPerSecond is the number of ticks in one second. A tick is 100ns.
	TicksPerSecond = 10_000_000
	// NanosPerTick is the number of nanoseconds in one tick.
	NanosPerTick = 100
)

// bounds of time.Time seconds that can be expressed in ticks.
const (
	minUnixSeconds = math.MinInt64 / TicksPerSecond
	maxUnixSeconds = math.MaxInt64/TicksPerSecond - 1
)

const timestampLayout = "2006-01-02T15:04:05.0000000"

var (
	_ Behavior[TimestampValue]   = (*TimestampTypeDef)(nil)
	_ KeyDecoder[TimestampValue] = (*TimestampTypeDef)(nil)
)

// TimestampTypeDef is the behavior of TimestampValue.
// Timestamps are ordered by ticks, then by their sub-tick remainder.
type TimestampTypeDef struct{}

var timestampDef = &TimestampTypeDef{}

// Timestamp returns the behavior of TimestampValue. Every call returns the same instance.
func Timestamp() *TimestampTypeDef {
	return timestampDef
}

func (*TimestampTypeDef) TypeName() string {
	return "timestamp"
}

func (*TimestampTypeDef) Compare(a, b TimestampValue) int {
	return a.Compare(b)
}

func (*TimestampTypeDef) IsValid(v TimestampValue) bool {
	return v.nanos >= 0 && v.nanos < NanosPerTick
}

// EncodeIndexKey returns a 16 byte key: the ticks encoded like an integer key,
// followed by the sub-tick remainder.
func (t *TimestampTypeDef) EncodeIndexKey(v TimestampValue) ([]byte, error) {
	if !t.IsValid(v) {
		return nil, errors.Wrapf(ErrInvalidValue, "sub-tick remainder %d out of range", v.nanos)
	}

	return encoding.EncodeTimestamp(make([]byte, 0, encoding.TimestampSize), v.ticks, v.nanos), nil
}

func (*TimestampTypeDef) DecodeIndexKey(key []byte) (TimestampValue, error) {
	ticks, nanos, err := encoding.DecodeTimestamp(key)
	if err != nil {
		return TimestampValue{}, invalidKey(err)
	}

	ts, err := NewTimestamp(ticks, nanos)
	if err != nil {
		return TimestampValue{}, invalidKey(err)
	}

	return ts, nil
}

func (*TimestampTypeDef) Hash(v TimestampValue) uint64 {
	return hashTimestamp(v.ticks, v.nanos)
}

var _ Value = TimestampValue{}

// TimestampValue is an instant with 1ns precision, stored as a number of
// 100ns ticks since the Unix epoch plus a remainder in [0, 100) nanoseconds.
// The zero value is the Unix epoch.
type TimestampValue struct {
	ticks int64
	nanos int64
}

// NewTimestamp returns the instant epoch + ticks*100ns + nanos*1ns.
// It returns ErrOutOfRange if nanos is not in [0, 100).
func NewTimestamp(ticks, nanos int64) (TimestampValue, error) {
	if nanos < 0 || nanos >= NanosPerTick {
		return TimestampValue{}, errors.Wrapf(ErrOutOfRange, "nanoseconds must be between 0 and %d, got %d", NanosPerTick-1, nanos)
	}

	return TimestampValue{ticks: ticks, nanos: nanos}, nil
}

// TimestampFromTime converts t to UTC and returns the number of ticks since the Unix epoch.
// Precision below one tick is dropped: the remainder of the result is always 0.
// It returns ErrOutOfRange if t cannot be expressed in ticks.
func TimestampFromTime(t time.Time) (TimestampValue, error) {
	ts, err := timestampFromTime(t)
	if err != nil {
		return TimestampValue{}, err
	}

	ts.nanos = 0
	return ts, nil
}

func timestampFromTime(t time.Time) (TimestampValue, error) {
	t = t.UTC()
	sec := t.Unix()
	if sec < minUnixSeconds || sec > maxUnixSeconds {
		return TimestampValue{}, errors.Wrapf(ErrOutOfRange, "timestamp %s cannot be expressed in ticks", t.Format(time.RFC3339))
	}

	ns := int64(t.Nanosecond())
	return TimestampValue{
		ticks: sec*TicksPerSecond + ns/NanosPerTick,
		nanos: ns % NanosPerTick,
	}, nil
}

// ParseTimestamp parses an RFC 3339 timestamp, including the output of TimestampValue.String,
// or any layout understood by carbon, interpreted as UTC when no offset is given.
// Unlike TimestampFromTime, the sub-tick remainder is kept.
func ParseTimestamp(s string) (TimestampValue, error) {
	if s == "" {
		return TimestampValue{}, errors.New("invalid timestamp: empty string")
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		c := carbon.Parse(s, "UTC")
		if c.Error != nil {
			return TimestampValue{}, errors.Wrapf(c.Error, "invalid timestamp %q", s)
		}
		t = c.ToStdTime()
	}

	return timestampFromTime(t)
}

// Ticks returns the number of 100ns ticks since the Unix epoch.
func (v TimestampValue) Ticks() int64 {
	return v.ticks
}

// Nanos returns the sub-tick remainder, in [0, 100).
func (v TimestampValue) Nanos() int64 {
	return v.nanos
}

// Time returns the UTC instant represented by v.
func (v TimestampValue) Time() time.Time {
	sec := v.ticks / TicksPerSecond
	rem := v.ticks % TicksPerSecond
	if rem < 0 {
		sec--
		rem += TicksPerSecond
	}

	return time.Unix(sec, rem*NanosPerTick+v.nanos).UTC()
}

// Compare returns -1, 0 or +1, comparing ticks first and the remainder second.
func (v TimestampValue) Compare(other TimestampValue) int {
	switch {
	case v.ticks < other.ticks:
		return -1
	case v.ticks > other.ticks:
		return 1
	case v.nanos < other.nanos:
		return -1
	case v.nanos > other.nanos:
		return 1
	}

	return 0
}

func (v TimestampValue) Equal(other TimestampValue) bool {
	return v == other
}

func (v TimestampValue) Before(other TimestampValue) bool {
	return v.Compare(other) < 0
}

func (v TimestampValue) After(other TimestampValue) bool {
	return v.Compare(other) > 0
}

func (v TimestampValue) V() any {
	return v
}

func (v TimestampValue) Type() Type {
	return TypeTimestamp
}

// String renders v as YYYY-MM-DDTHH:mm:ss.fffffff followed by the two digit
// sub-tick remainder when it isn't zero, and Z.
func (v TimestampValue) String() string {
	b := v.Time().AppendFormat(make([]byte, 0, len(timestampLayout)+3), timestampLayout)
	if v.nanos != 0 {
		if v.nanos < 10 {
			b = append(b, '0')
		}
		b = strconv.AppendInt(b, v.nanos, 10)
	}

	return string(append(b, 'Z'))
}

func (v TimestampValue) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(v.String())), nil
}
