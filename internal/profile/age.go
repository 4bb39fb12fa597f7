package profile

import "time"

// Age returns whole years between birth and now. It is one less until the
// birthday has been reached this year, and never negative.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// AgeAt is Age for the profile's birth date.
func (p Profile) AgeAt(now time.Time) int {
	return Age(p.BirthDate(), now)
}
