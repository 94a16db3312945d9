package strength

// Label is the presentation bucket for a score. It never feeds back into
// the score itself.
type Label int

const (
	Weak Label = iota
	Medium
	Strong
	VeryStrong
)

// LabelFor maps score onto [0,40) weak, [40,70) medium, [70,90) strong and
// [90,100] very strong. Out of range scores clamp to the nearest bucket.
func LabelFor(score int) Label {
	switch {
	case score < 40:
		return Weak
	case score < 70:
		return Medium
	case score < 90:
		return Strong
	default:
		return VeryStrong
	}
}

func (l Label) String() string {
	switch l {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very-strong"
	default:
		return "unknown"
	}
}

// Title is the human readable name.
func (l Label) Title() string {
	switch l {
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	case VeryStrong:
		return "Very strong"
	default:
		return "Unknown"
	}
}

// Class is the alert style associated with the label.
func (l Label) Class() string {
	switch l {
	case Weak:
		return "danger"
	case Medium:
		return "warning"
	case Strong:
		return "info"
	default:
		return "success"
	}
}
