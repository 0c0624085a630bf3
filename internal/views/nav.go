package views

type NavItem struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// Nav returns the navigation bar with the entry for path marked active.
func Nav(path string) []NavItem {
	items := []NavItem{
		{Label: "Events", Path: "/"},
		{Label: "Create Event", Path: "/create"},
		{Label: "My Bookings", Path: "/bookings"},
	}

	for i := range items {
		items[i].Active = items[i].Path == path
	}

	return items
}
