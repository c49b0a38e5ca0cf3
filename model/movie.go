package model

// Genre describes the genre a movie belongs to.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Director describes the director of a movie.
type Director struct {
	Name  string `json:"name"`
	Bio   string `json:"bio,omitempty"`
	Birth string `json:"birth,omitempty"`
	Death string `json:"death,omitempty"`
}

// Movie is a catalog entry. ID is assigned by the store and never changes.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year,omitempty"`
	Description string   `json:"description,omitempty"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Featured    bool     `json:"featured"`
}
