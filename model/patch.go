package model

import "time"

// MoviePatch is a partial update of a Movie. Nil fields are left unchanged.
type MoviePatch struct {
	Title       *string
	Year        *int
	Description *string
	Genre       *Genre
	Director    *Director
	ImageURL    *string
	Featured    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Year == nil && p.Description == nil && p.Genre == nil &&
		p.Director == nil && p.ImageURL == nil && p.Featured == nil
}

// ApplyMoviePatch returns a copy of m with the patch applied. m is not modified.
func ApplyMoviePatch(m Movie, p MoviePatch) Movie {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Year != nil {
		m.Year = *p.Year
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
	if p.Featured != nil {
		m.Featured = *p.Featured
	}
	return m
}

// UserPatch is a partial update of a User. Password, when set, must already be hashed.
type UserPatch struct {
	Username *string
	Password *string
	Email    *string
	Birthday *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Email == nil && p.Birthday == nil
}

// ApplyUserPatch returns a copy of u with the patch applied. The favorites slice is copied
// so the result never aliases u.
func ApplyUserPatch(u User, p UserPatch) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Birthday != nil {
		b := *p.Birthday
		u.Birthday = &b
	}
	u.FavoriteMovies = append([]string(nil), u.FavoriteMovies...)
	return u
}
