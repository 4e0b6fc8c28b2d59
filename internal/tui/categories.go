package tui

// Category is one section of the configuration menu
type Category struct {
	ID          string
	Name        string
	Description string
}

// Categories lists the menu sections in display order
var Categories = []Category{
	{ID: "output", Name: "Channel Tree", Description: "Prefix, dry run and progress bar"},
	{ID: "index", Name: "Indexer", Description: "Post-distribution indexing command"},
	{ID: "state", Name: "Ledger", Description: "Placement ledger under the prefix"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

// GetCategoryByID returns the category with the given ID, or nil
func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

// GetCategoryNames returns the display names of all categories
func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
