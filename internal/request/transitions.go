package request

// validTransitions is the full status machine. Absence means the move is
// rejected, which also covers self-transitions since no status lists itself.
// SCRAP is terminal.
var validTransitions = map[string][]string{
	StatusNew:        {StatusInProgress, StatusScrap},
	StatusInProgress: {StatusRepaired, StatusScrap},
	StatusRepaired:   {StatusScrap},
	StatusScrap:      {},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
