package leave

import "hrpay/internal/domain/attendance"

const (
	StatusPending  = "대기"
	StatusApproved = "승인"
	StatusRejected = "반려"

	TypeAnnual  = "연차"
	TypeHalfDay = "반차"
	TypeSick    = "병가"
	TypeOther   = "기타"

	TypeFieldWork    = attendance.BoardOutside
	TypeBusinessTrip = attendance.BoardTrip

	KindLeave = "leave"
	KindWork  = "work"
)

// unpaidWeight is the unpaid-day equivalent per weekday for each request type.
var unpaidWeight = map[string]float64{
	TypeAnnual:       1.0,
	TypeHalfDay:      0.5,
	TypeSick:         0,
	TypeOther:        0,
	TypeFieldWork:    0,
	TypeBusinessTrip: 0,
}

func Weight(requestType string) float64 {
	return unpaidWeight[requestType]
}

func ValidType(requestType string) bool {
	_, ok := unpaidWeight[requestType]
	return ok
}

func IsWorkType(requestType string) bool {
	return requestType == TypeFieldWork || requestType == TypeBusinessTrip
}

func Kind(requestType string) string {
	if IsWorkType(requestType) {
		return KindWork
	}
	return KindLeave
}

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}
