package core

const (
	StatusActive     = "재직"
	StatusTerminated = "퇴사"
	// StatusAll disables the status filter on employee lists.
	StatusAll = "전체"

	GenderMale   = "남"
	GenderFemale = "여"
)

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusTerminated
}
