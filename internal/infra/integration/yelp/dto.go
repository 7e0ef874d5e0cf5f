package yelp

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

type business struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Phone        string     `json:"phone"`
	DisplayPhone string     `json:"display_phone"`
	ReviewCount  int        `json:"review_count"`
	Rating       float64    `json:"rating"`
	Categories   []category `json:"categories"`
	Location     location   `json:"location"`
	Coordinates  struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
}

type category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type location struct {
	Address1       string   `json:"address1"`
	City           string   `json:"city"`
	ZipCode        string   `json:"zip_code"`
	DisplayAddress []string `json:"display_address"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
