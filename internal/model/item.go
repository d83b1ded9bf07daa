package model

import "time"

// Item is one movie entry as decoded from the /movies payload.
// Only ID and Title are used for display; the rest rides along.
type Item struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Year        int     `json:"year,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Description string  `json:"description,omitempty"`
}

// DisplayRow is the projection of an Item the list renders.
type DisplayRow struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
}

// FetchStats is one record per completed fetch cycle. Times are milliseconds.
type FetchStats struct {
	SizeMB        float64   `json:"sizeMb"`
	NumberOfRows  int       `json:"numberOfRows"`
	InflightTime  int64     `json:"inflightTime"`
	JSONParseTime int64     `json:"jsonParseTime"`
	TransformTime int64     `json:"transformTime"`
	CompletedAt   time.Time `json:"completedAt"`
}
