package models

// Good is a donated item listed on the public catalog.
type Good struct {
	BaseModel
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Address     string `json:"address"`
}
