package domain

import "time"

// PackTime encodes t (UTC, minute precision) the way the client calendar reads dates:
// year since 2000, month, day, weekday, hour and minute in one 32-bit word.
func PackTime(t time.Time) uint32 {
	t = t.UTC()
	return uint32(t.Year()-2000)<<24 |
		uint32(t.Month()-1)<<20 |
		uint32(t.Day()-1)<<14 |
		uint32(t.Weekday())<<11 |
		uint32(t.Hour())<<6 |
		uint32(t.Minute())
}

// UnpackTime is the inverse of PackTime.
func UnpackTime(p uint32) time.Time {
	minute := int(p & 0x3F)
	hour := int((p >> 6) & 0x1F)
	day := int((p>>14)&0x3F) + 1
	month := time.Month((p>>20)&0xF) + 1
	year := int((p>>24)&0x1F) + 2000
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
