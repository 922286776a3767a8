package dictapi

import "github.com/heartmarshall/wordlens/internal/provider"

// apiResponse is the dictionary API's wire envelope.
type apiResponse struct {
	Entries []provider.Entry `json:"entries"`
}
