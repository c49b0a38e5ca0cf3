package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format of calendar dates such as a user's birthday.
const DateLayout = "2006-01-02"

// User is a registered account. Password always holds a bcrypt hash.
type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Password       string     `json:"-"`
	Email          string     `json:"email"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	FavoriteMovies []string   `json:"favoriteMovies"`
}

// HasFavorite reports whether movieID is already in the user's favorites.
func (u *User) HasFavorite(movieID string) bool {
	for _, id := range u.FavoriteMovies {
		if id == movieID {
			return true
		}
	}
	return false
}

// AddFavorite adds movieID to the favorites set. Adding an existing id is a no-op.
func (u *User) AddFavorite(movieID string) {
	if u.HasFavorite(movieID) {
		return
	}
	u.FavoriteMovies = append(u.FavoriteMovies, movieID)
}

// RemoveFavorite drops movieID from the favorites set if present.
func (u *User) RemoveFavorite(movieID string) {
	kept := u.FavoriteMovies[:0]
	for _, id := range u.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	u.FavoriteMovies = kept
}

// MarshalJSON writes the birthday as a calendar date.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	out := struct {
		alias
		Birthday string `json:"birthday,omitempty"`
	}{alias: alias(u)}
	if u.Birthday != nil {
		out.Birthday = u.Birthday.Format(DateLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts a calendar date or an RFC 3339 timestamp for the birthday.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		Birthday string `json:"birthday,omitempty"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Birthday == "" {
		return nil
	}
	birthday, err := time.Parse(DateLayout, aux.Birthday)
	if err != nil {
		if birthday, err = time.Parse(time.RFC3339, aux.Birthday); err != nil {
			return err
		}
	}
	u.Birthday = &birthday
	return nil
}
