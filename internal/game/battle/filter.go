package battle

// Filter narrows battle listings. Zero fields match everything.
type Filter struct {
	PlayerID string
	Status   Status
	Type     Type
	Limit    int
	Offset   int
}

// Matches reports whether the battle passes the filter's field
// predicates. Pagination is the store's concern.
func (f Filter) Matches(b *Battle) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Type != "" && b.Type != f.Type {
		return false
	}
	if f.PlayerID != "" {
		found := false
		for i := range b.Participants {
			if b.Participants[i].PlayerID == f.PlayerID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
