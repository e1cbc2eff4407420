package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. It is also used to
// derive acquisition cache keys from canonical request strings.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Action identifies the kind of feedback a user gave on a place.
type Action int

const (
	// ActionLike is an explicit positive signal.
	ActionLike Action = iota + 1
	// ActionDislike is an explicit negative signal.
	ActionDislike
	// ActionClick is an implicit positive signal (the user opened the place).
	ActionClick
)

// String returns the wire representation of the action.
func (a Action) String() string {
	switch a {
	case ActionLike:
		return "like"
	case ActionDislike:
		return "dislike"
	case ActionClick:
		return "click"
	default:
		return "unknown"
	}
}

// ParseAction converts a wire string into an Action.
// Returns ErrInvalidAction for anything but "like", "dislike" or "click".
func ParseAction(s string) (Action, error) {
	switch s {
	case "like":
		return ActionLike, nil
	case "dislike":
		return ActionDislike, nil
	case "click":
		return ActionClick, nil
	default:
		return 0, ErrInvalidAction
	}
}

// Feedback represents a single user reaction to a recommended place.
type Feedback struct {
	Id           ID
	UserID       string
	PlaceID      string
	Action       Action
	CategoryHint string    // Category tag the reaction applies to, e.g. "amenity:cafe". May be empty.
	CreatedAt    time.Time // When the feedback was recorded
}

// Place is a canonical, provider-agnostic point of interest.
//
// Rating, PriceLevel and OpenNow are placeholders the current data source
// cannot supply: they stay nil (absent), never zero.
type Place struct {
	ID         string // "<source>:<elementType>:<elementId>", unique within one acquisition result
	Name       string // Required; nameless records are dropped during normalization
	Address    string // Joined address components; empty when the source had none
	Lat        float64
	Lng        float64
	Categories []string // Ordered "facet:value" tags, e.g. "amenity:cafe"
	Rating     *float64
	PriceLevel *int
	OpenNow    *bool
}

// ScoredPlace is a Place plus the per-request ranking signals.
// Instances are constructed once per ranking pass and not mutated afterwards.
//
// SemanticScore is min-max normalized across the candidate set of the current
// request only; it is not comparable across requests.
type ScoredPlace struct {
	Place
	DistanceMeters float64 // Great-circle distance from the query coordinate, non-negative
	SemanticScore  float64 // [0,1], relative to the current candidate set
	CategoryScore  float64 // 0 or 1, keyword heuristic
	PersonalBoost  float64 // [-0.10, 0.10], from the user's feedback history
	Score          float64 // Composite used for final ordering
}

// BoostMap maps category tags to a signed personalization boost in [-0.10, 0.10].
// It is a transient projection of a user's feedback history at request time and
// is recomputed on every request that supplies a user id.
type BoostMap map[string]float64
