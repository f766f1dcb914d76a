package models

import "github.com/a-h/templ"

type NavItem struct {
	Name     string
	URL      string
	Icon     string
	InHeader bool
}

type Navigation struct {
	Items []NavItem
}

// Header returns the items flagged for the top bar.
func (n Navigation) Header() []NavItem {
	var items []NavItem
	for _, item := range n.Items {
		if item.InHeader {
			items = append(items, item)
		}
	}
	return items
}

type LayoutTempl struct {
	Title     string
	BaseURL   string
	Nav       Navigation
	Social    Navigation
	ActiveNav string
	Content   templ.Component
}
