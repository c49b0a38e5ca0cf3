// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new user.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=5,alphanum"`
	Password string `json:"password" validate:"required,notblank,max=72"`
	Email    string `json:"email" validate:"required,email"`
	Birthday string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateUserRequest carries the profile fields a user may change. Absent fields are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitnil,min=5,alphanum"`
	Password *string `json:"password,omitempty" validate:"omitnil,notblank,max=72"`
	Email    *string `json:"email,omitempty" validate:"omitnil,email"`
	Birthday *string `json:"birthday,omitempty" validate:"omitnil,datetime=2006-01-02"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// CreateMovieRequest defines the payload for adding a movie to the catalog.
type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required"`
	Year        int       `json:"year,omitempty" validate:"omitempty,gte=1870,lte=2100"`
	Description string    `json:"description,omitempty"`
	Genre       *Genre    `json:"genre,omitempty"`
	Director    *Director `json:"director,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Featured    bool      `json:"featured,omitempty"`
}

// Movie builds the record to persist. The ID is left for the store to assign.
func (r CreateMovieRequest) Movie() *Movie {
	m := &Movie{
		Title:       r.Title,
		Year:        r.Year,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Featured:    r.Featured,
	}
	if r.Genre != nil {
		m.Genre = *r.Genre
	}
	if r.Director != nil {
		m.Director = *r.Director
	}
	return m
}

// UpdateMovieRequest is a partial movie update.
type UpdateMovieRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitnil,min=1"`
	Year        *int      `json:"year,omitempty" validate:"omitnil,gte=1870,lte=2100"`
	Description *string   `json:"description,omitempty"`
	Genre       *Genre    `json:"genre,omitempty"`
	Director    *Director `json:"director,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty" validate:"omitnil,url"`
	Featured    *bool     `json:"featured,omitempty"`
}

// Patch converts the request into a MoviePatch.
func (r UpdateMovieRequest) Patch() MoviePatch {
	return MoviePatch{
		Title:       r.Title,
		Year:        r.Year,
		Description: r.Description,
		Genre:       r.Genre,
		Director:    r.Director,
		ImageURL:    r.ImageURL,
		Featured:    r.Featured,
	}
}
