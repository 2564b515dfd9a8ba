package models

// MovieMetadata is the subset of provider movie detail used for recaps.
type MovieMetadata struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Tagline  string `json:"tagline"`
}

// SeriesMetadata is the subset of provider series detail used for recaps.
type SeriesMetadata struct {
	Name string `json:"name"`
}

// EpisodeMetadata is one entry of a season's episode list. EpisodeNumber is nil when the
// provider does not know it.
type EpisodeMetadata struct {
	EpisodeNumber *int   `json:"episode_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview"`
}

// SeasonMetadata lists the episodes of one season in provider order.
type SeasonMetadata struct {
	Episodes []EpisodeMetadata `json:"episodes"`
}
