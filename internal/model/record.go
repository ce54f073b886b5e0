package model

// RawRecord is one imaging order's free-text fields as received from
// the source system. Immutable input.
type RawRecord struct {
	Exam     string
	Organ    string
	Contrast string
}

// FlagRecord is the derived bitmask encoding of a RawRecord. A zero
// flag means no registered category matched, which for the contrast
// field coincides with the explicit zero bit of "without".
type FlagRecord struct {
	Exam     uint64
	Organ    uint64
	Contrast uint64
}
