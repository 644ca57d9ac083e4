package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const sequenceDigits = 4

// EmployeeIDPrefix is the two-digit hire year followed by the department code, e.g. "25HR".
func EmployeeIDPrefix(hireDate time.Time, deptCode string) string {
	return fmt.Sprintf("%02d%s", hireDate.Year()%100, strings.ToUpper(deptCode))
}

func FormatEmployeeID(prefix string, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, sequenceDigits, seq)
}

// NextEmployeeID returns the id after last for prefix. An empty last starts at 0001.
func NextEmployeeID(prefix, last string) (string, error) {
	if last == "" {
		return FormatEmployeeID(prefix, 1), nil
	}
	if !strings.HasPrefix(last, prefix) || len(last) != len(prefix)+sequenceDigits {
		return "", ErrInvalidEmployeeID
	}
	seq, err := strconv.Atoi(last[len(prefix):])
	if err != nil {
		return "", ErrInvalidEmployeeID
	}
	if seq >= 9999 {
		return "", ErrSequenceExhausted
	}
	return FormatEmployeeID(prefix, seq+1), nil
}
