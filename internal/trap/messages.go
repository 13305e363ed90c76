package trap

// SuccessMessage identifies the user notification for a successful capture.
type SuccessMessage int

const (
	SoulCaptured SuccessMessage = iota
	SoulDisplaced
	SoulShrunk
	SoulSplit
)

// Text returns the user-facing notification line.
func (m SuccessMessage) Text() string {
	switch m {
	case SoulCaptured:
		return "Soul captured!"
	case SoulDisplaced:
		return "Soul captured! Displaced a smaller soul."
	case SoulShrunk:
		return "Soul captured! The soul was shrunk to fit."
	case SoulSplit:
		return "Soul captured! Part of a split soul."
	default:
		return "Soul captured!"
	}
}

// FailureMessage identifies the user notification for a failed capture,
// chosen from the collector's final inventory status.
type FailureMessage int

const (
	AllSoulGemsFilled FailureMessage = iota
	NoSoulGemsOwned
	NoSuitableSoulGem
	NoSoulGemLargeEnough
)

// Text returns the user-facing notification line.
func (m FailureMessage) Text() string {
	switch m {
	case AllSoulGemsFilled:
		return "All soul gems are filled."
	case NoSoulGemsOwned:
		return "No soul gems owned."
	case NoSuitableSoulGem:
		return "No suitable soul gem to hold the soul."
	case NoSoulGemLargeEnough:
		return "No soul gem large enough to hold the soul."
	default:
		return "The soul escaped."
	}
}
