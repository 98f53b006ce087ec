package recommendations

import "time"

// CurrentSeason returns the northern-hemisphere season for the given date:
// spring (Mar 20), summer (Jun 21), fall (Sep 22), winter (Dec 21). Winter
// spans the year boundary.
func CurrentSeason(today time.Time) string {
	y := today.Year()
	springStart := time.Date(y, time.March, 20, 0, 0, 0, 0, today.Location())
	summerStart := time.Date(y, time.June, 21, 0, 0, 0, 0, today.Location())
	fallStart := time.Date(y, time.September, 22, 0, 0, 0, 0, today.Location())
	winterStart := time.Date(y, time.December, 21, 0, 0, 0, 0, today.Location())

	switch {
	case !today.Before(springStart) && today.Before(summerStart):
		return "spring"
	case !today.Before(summerStart) && today.Before(fallStart):
		return "summer"
	case !today.Before(fallStart) && today.Before(winterStart):
		return "fall"
	default:
		return "winter"
	}
}
