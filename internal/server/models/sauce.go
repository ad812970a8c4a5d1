package models

// Sauce is a user-submitted hot-sauce record with an uploaded image.
//
// Invariants maintained by the sauce repository:
//   - Likes == len(UsersLiked), Dislikes == len(UsersDisliked)
//   - a user id appears in at most one of the two voter sets
//
// ImageKey is the stored blob reference; ImageURL is the resolvable location
// filled in by the service on the way out and never persisted.
type Sauce struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	Name          string   `json:"name"`
	Manufacturer  string   `json:"manufacturer"`
	Description   string   `json:"description"`
	MainPepper    string   `json:"mainPepper"`
	Ingredients   []string `json:"ingredients"`
	Heat          int      `json:"heat"`
	ImageKey      string   `json:"-"`
	ImageURL      string   `json:"imageUrl"`
	Likes         int      `json:"likes"`
	Dislikes      int      `json:"dislikes"`
	UsersLiked    []string `json:"usersLiked"`
	UsersDisliked []string `json:"usersDisliked"`
}

// SauceInput carries the caller-editable fields of a sauce. Counters, voter
// sets, owner and image reference are managed by the service, never by input.
type SauceInput struct {
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Description  string   `json:"description"`
	MainPepper   string   `json:"mainPepper"`
	Ingredients  []string `json:"ingredients"`
	Heat         int      `json:"heat"`
}

// Vote directions accepted by the like endpoint.
const (
	VoteLike    = 1
	VoteClear   = 0
	VoteDislike = -1
)
