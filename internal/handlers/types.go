package handlers

// ShortenRequest is the request body for shortening a URL.
type ShortenRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// ShortenResponse is the response for a shorten request. Status is 201 when a
// mapping was created and 200 when the URL had already been shortened; the
// canonical URL is echoed only on creation.
type ShortenResponse struct {
	Status int
	Body   struct {
		ShortCode string `doc:"The short code"               example:"Uk6cSd"               json:"shortCode"`
		URL       string `doc:"The canonical URL registered" example:"https://example.com/" json:"url,omitempty"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"Uk6cSd" path:"code"`
}

// RedirectResponse redirects to the resolved URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The resolved target URL" header:"Location"`
	}
}
