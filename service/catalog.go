package service

import "movie-api/model"

var (
	miyazaki = model.Director{
		Name:  "Hayao Miyazaki",
		Bio:   "Japanese animator and co-founder of Studio Ghibli.",
		Birth: "1941",
	}
	takahata = model.Director{
		Name:  "Isao Takahata",
		Bio:   "Japanese director and co-founder of Studio Ghibli.",
		Birth: "1935",
		Death: "2018",
	}
	kondo = model.Director{
		Name:  "Yoshifumi Kondō",
		Bio:   "Japanese animator and director at Studio Ghibli.",
		Birth: "1950",
		Death: "1998",
	}
	yonebayashi = model.Director{
		Name:  "Hiromasa Yonebayashi",
		Bio:   "Japanese animator and director.",
		Birth: "1973",
	}

	fantasy = model.Genre{Name: "Fantasy", Description: "Stories built around magic and the supernatural."}
	drama   = model.Genre{Name: "Drama", Description: "Character-driven stories with emotional themes."}
	comedy  = model.Genre{Name: "Comedy", Description: "Light-hearted stories meant to amuse."}
)

// DefaultCatalog returns the Studio Ghibli films the catalog is seeded with.
func DefaultCatalog() []*model.Movie {
	return []*model.Movie{
		{Title: "My Neighbor Totoro", Year: 1988, Genre: fantasy, Director: miyazaki, Featured: true},
		{Title: "Kiki's Delivery Service", Year: 1989, Genre: fantasy, Director: miyazaki},
		{Title: "Pom Poko", Year: 1994, Genre: comedy, Director: takahata},
		{Title: "Whisper of the Heart", Year: 1995, Genre: drama, Director: kondo},
		{Title: "Princess Mononoke", Year: 1997, Genre: fantasy, Director: miyazaki},
		{Title: "Spirited Away", Year: 2001, Genre: fantasy, Director: miyazaki, Featured: true},
		{Title: "Howl's Moving Castle", Year: 2004, Genre: fantasy, Director: miyazaki},
		{Title: "Ponyo", Year: 2008, Genre: fantasy, Director: miyazaki},
		{Title: "Arrietty", Year: 2010, Genre: fantasy, Director: yonebayashi},
		{Title: "The Tale of the Princess Kaguya", Year: 2013, Genre: drama, Director: takahata},
	}
}
