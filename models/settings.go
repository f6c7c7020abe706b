package models

// ScheduleSettings carries the court and timing parameters for a generation
// call. It is treated as an immutable value and threaded by reference through
// the generators and the final round composer.
//
// StartTime is wall-clock "HH:MM". Schedule arithmetic is raw minute math
// with no timezone or day-rollover handling, so assigned times may exceed
// 23:59 on long events.
type ScheduleSettings struct {
	CourtCount           int    `json:"court_count"`
	StartTime            string `json:"start_time"`
	MatchDurationMinutes int    `json:"match_duration_minutes"`
	RestMinutes          int    `json:"rest_minutes"`
}
