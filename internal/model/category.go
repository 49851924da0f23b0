package model

// Category is one of the two name axes of the dataset
type Category string

const (
	FirstName Category = "first"
	LastName  Category = "last"
)

// Categories lists every category in dataset order
var Categories = []Category{FirstName, LastName}

// Dir returns the name of the directory holding the category's buckets
func (c Category) Dir() string {
	switch c {
	case FirstName:
		return "first_names"
	case LastName:
		return "last_names"
	default:
		return ""
	}
}
