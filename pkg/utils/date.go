package utils

import "time"

// WorkedDays são os dias corridos do ano até date menos os dias não trabalhados,
// nunca menos que 1
func WorkedDays(date time.Time, nonWorkedDays int) int {
	return max(date.YearDay()-nonWorkedDays, 1)
}
