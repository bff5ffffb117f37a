package model

type NoteStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Favorite  int `json:"favorite"`
	Scheduled int `json:"scheduled"`
}
