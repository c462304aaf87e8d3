package scoring

// RentRatio is monthly rent over total cash invested (offer + rehab).
// A zero investment yields 0, never a division by zero.
func RentRatio(potentialRent, offerPrice, rehabCosts float64) float64 {
	total := offerPrice + rehabCosts
	if total == 0 {
		return 0
	}
	return potentialRent / total
}

// ARVRatio is total investment over after-repair value. A zero ARV yields 0.
func ARVRatio(offerPrice, rehabCosts, arv float64) float64 {
	if arv == 0 {
		return 0
	}
	return (offerPrice + rehabCosts) / arv
}
