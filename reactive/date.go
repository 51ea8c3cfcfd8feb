package reactive

import "time"

// Date is a reactive point in time. Setters notify only when the instant or
// the location actually changes.
type Date struct {
	owners
	t time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{t: t}
}

func (d *Date) adopt(o owner) bool {
	if d == nil {
		return false
	}
	return d.add(o)
}

func (d *Date) release(o owner) {
	if d == nil {
		return
	}
	d.remove(o)
}

func (d *Date) Time() time.Time {
	d.track()
	return d.t
}

func (d *Date) Set(t time.Time) {
	if d.t.Equal(t) && d.t.Location() == t.Location() {
		return
	}
	d.t = t
	d.notify()
}

func (d *Date) Add(dur time.Duration) {
	d.Set(d.t.Add(dur))
}

func (d *Date) AddDate(years, months, days int) {
	d.Set(d.t.AddDate(years, months, days))
}

func (d *Date) Truncate(dur time.Duration) {
	d.Set(d.t.Truncate(dur))
}

func (d *Date) Unix() int64 {
	d.track()
	return d.t.Unix()
}

func (d *Date) Format(layout string) string {
	d.track()
	return d.t.Format(layout)
}

func (d *Date) String() string {
	return d.t.String()
}
