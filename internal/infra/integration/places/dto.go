package places

// Candidate is a normalized search hit, before website filtering.
type Candidate struct {
	ID          string
	Name        string
	Phone       string
	Address     string
	Rating      float64
	ReviewCount int
	WebsiteURI  string
	MapsURL     string
}

func (c Candidate) HasWebsite() bool {
	return c.WebsiteURI != ""
}

// --- wire format ---

type searchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount"`
}

type searchTextResponse struct {
	Places []placeResult `json:"places"`
}

type placeResult struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress    string  `json:"formattedAddress"`
	NationalPhoneNumber string  `json:"nationalPhoneNumber"`
	Rating              float64 `json:"rating"`
	UserRatingCount     int     `json:"userRatingCount"`
	WebsiteURI          string  `json:"websiteUri"`
	GoogleMapsURI       string  `json:"googleMapsUri"`
	PrimaryType         string  `json:"primaryType"`
}
