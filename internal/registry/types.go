package registry

// Placeholder texts delivered instead of registry data when a lookup degrades.
const (
	NoSummary      = "No summary provided by PyPI"
	NoDescription  = "No detailed description provided by PyPI"
	Unavailable    = "No description available"
	NetworkFailure = "Network error, unable to fetch information from PyPI"
)

// Outcome classifies how a lookup ended.
type Outcome int

const (
	// OutcomeOK means the registry answered 200 with a parseable body.
	OutcomeOK Outcome = iota
	// OutcomeHTTPStatus means the registry answered with a non-200 status.
	OutcomeHTTPStatus
	// OutcomeNetwork means the request never completed (timeout, DNS, refused).
	OutcomeNetwork
	// OutcomeUnexpected covers everything else, e.g. a malformed body.
	OutcomeUnexpected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeHTTPStatus:
		return "http-status"
	case OutcomeNetwork:
		return "network"
	case OutcomeUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Info is the registry metadata for one package. Summary and Description are
// always set; on failure both hold the same placeholder text.
type Info struct {
	Summary     string
	Description string
	Outcome     Outcome
}

// projectResponse is the subset of the PyPI JSON API document we read.
type projectResponse struct {
	Info projectInfo `json:"info"`
}

type projectInfo struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	ProjectURL  string `json:"project_url"`
	HomePage    string `json:"home_page"`
}
