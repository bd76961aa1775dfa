package domain

// Selection holds at most one selected skip ID. The zero value selects nothing.
type Selection struct {
	id    int64
	valid bool
}

// Select returns a selection holding id.
func Select(id int64) Selection {
	return Selection{id: id, valid: true}
}

// ID returns the selected skip ID and whether anything is selected.
func (s Selection) ID() (int64, bool) {
	return s.id, s.valid
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return !s.valid
}

// IsSelected reports whether id is the selected skip.
func (s Selection) IsSelected(id int64) bool {
	return s.valid && s.id == id
}

// Toggle returns the selection after clicking id: clicking the selected skip
// clears the selection, clicking any other skip replaces it.
func (s Selection) Toggle(id int64) Selection {
	if s.IsSelected(id) {
		return Selection{}
	}
	return Select(id)
}

// Find returns the selected record from skips, or nil when nothing is selected
// or the selected ID is not in the list.
func (s Selection) Find(skips []Skip) *Skip {
	if !s.valid {
		return nil
	}
	for i := range skips {
		if skips[i].ID == s.id {
			return &skips[i]
		}
	}
	return nil
}
