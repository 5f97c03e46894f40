package ticketmaster

// Event is a single event as returned by the discovery API. Events are
// replaced wholesale on re-fetch, never merged.
type Event struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	URL             string           `json:"url"`
	Locale          string           `json:"locale"`
	Images          []Image          `json:"images"`
	Dates           Dates            `json:"dates"`
	Classifications []Classification `json:"classifications"`
	PriceRanges     []PriceRange     `json:"priceRanges"`
	Embedded        *EventEmbedded   `json:"_embedded,omitempty"`
}

type EventEmbedded struct {
	Venues      []Venue      `json:"venues"`
	Attractions []Attraction `json:"attractions"`
}

type Attraction struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            string           `json:"type"`
	URL             string           `json:"url"`
	Images          []Image          `json:"images"`
	Classifications []Classification `json:"classifications"`
}

type Image struct {
	Ratio    string `json:"ratio"`
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Fallback bool   `json:"fallback"`
}

type Dates struct {
	Start    DateStart  `json:"start"`
	Timezone string     `json:"timezone"`
	Status   DateStatus `json:"status"`
}

type DateStart struct {
	LocalDate string `json:"localDate"`
	LocalTime string `json:"localTime"`
	DateTime  string `json:"dateTime"`
}

type DateStatus struct {
	Code string `json:"code"`
}

type Classification struct {
	Primary  bool     `json:"primary"`
	Segment  NamedRef `json:"segment"`
	Genre    NamedRef `json:"genre"`
	SubGenre NamedRef `json:"subGenre"`
}

type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Venue struct {
	Name     string        `json:"name"`
	City     VenueCity     `json:"city"`
	Address  VenueAddress  `json:"address"`
	Location VenueLocation `json:"location"`
}

type VenueCity struct {
	Name string `json:"name"`
}

type VenueAddress struct {
	Line1 string `json:"line1"`
}

type VenueLocation struct {
	Longitude string `json:"longitude"`
	Latitude  string `json:"latitude"`
}

type PriceRange struct {
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Page carries the discovery API pagination metadata.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}
