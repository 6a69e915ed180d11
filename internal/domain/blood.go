package domain

// BloodGroups is the set of accepted ABO/Rh blood groups.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodGroup reports whether g is one of the accepted blood groups.
func ValidBloodGroup(g string) bool {
	for _, known := range BloodGroups {
		if g == known {
			return true
		}
	}
	return false
}
