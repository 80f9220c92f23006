package models

// Badge is a record in the badges collection. Icon is either one of the
// built-in icon names or the filename of an uploaded image asset.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
