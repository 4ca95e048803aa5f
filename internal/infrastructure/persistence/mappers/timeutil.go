package mappers

import "time"

// convertMillisToTime converts unix milliseconds to a UTC time.
func convertMillisToTime(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}

// timePtrToMillis converts an optional time to optional unix milliseconds.
func timePtrToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// millisPtrToTime converts optional unix milliseconds to an optional UTC time.
func millisPtrToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}
