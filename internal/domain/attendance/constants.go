package attendance

const (
	StatusNormal   = "정상"
	StatusLate     = "지각"
	StatusAbsent   = "결근"
	StatusModified = "수정됨"

	ActionClockIn  = "출근"
	ActionClockOut = "퇴근"

	BoardPresent  = "재실"
	BoardLeave    = "휴가"
	BoardOutside  = "외근"
	BoardTrip     = "출장"
	BoardAbsent   = "부재"
	NotRegistered = "미등록"

	DefaultWorkdayStart = "09:00:00"
	LunchBreakMinutes   = 60
	lunchThresholdHours = 4
)
