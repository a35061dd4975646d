package models

// Stats holds row counts for the operational stats endpoint
type Stats struct {
	Users    int `json:"users"`
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}
