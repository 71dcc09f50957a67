package domain

import (
	"errors"
	"time"
)

var ErrOutfitNotFound = errors.New("outfit not found")
var ErrRatingNotFound = errors.New("rating not found")
var ErrMalformedRating = errors.New("rating response does not match the expected schema")
var ErrInvalidImage = errors.New("invalid image payload")
var ErrTooManyImages = errors.New("too many images")
var ErrNoImages = errors.New("at least one image is required")
var ErrMissingPrompt = errors.New("prompt is required")
var ErrNoImageGenerated = errors.New("backend returned no generated image")
var ErrNoImageReturned = errors.New("backend response contains no image")
var ErrActionInProgress = errors.New("action already in progress")
var ErrAPIKeyMissing = errors.New("generative backend API key is not configured")

// MaxOutfitImages caps how many photos a single advice or rating request may carry.
const MaxOutfitImages = 5

// SavedOutfit is one entry in a user's personal collection. The image fields
// hold data URLs so an entry is self-contained and renderable as stored.
type SavedOutfit struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"-" bson:"user_id"`
	AdviceID       string    `json:"advice_id" bson:"advice_id"`
	Image          string    `json:"image" bson:"image"`
	Prompt         string    `json:"prompt" bson:"prompt"`
	Advice         string    `json:"advice" bson:"advice"`
	GeneratedImage string    `json:"generated_image,omitempty" bson:"generated_image,omitempty"`
	SavedAt        time.Time `json:"saved_at" bson:"saved_at"`
}

// Analysis is one scored dimension of an outfit rating.
type Analysis struct {
	Score    float64 `json:"score"`
	Comments string  `json:"comments"`
}

// OutfitRating is the structured verdict returned by the rating request.
// A FacialAnalysis score of 0 signals that no face was visible in the photos.
type OutfitRating struct {
	OverallScore   float64  `json:"overallScore"`
	OutfitAnalysis Analysis `json:"outfitAnalysis"`
	FacialAnalysis Analysis `json:"facialAnalysis"`
	Summary        string   `json:"summary"`
}

// FaceDetected reports whether the rating includes a facial analysis.
func (r OutfitRating) FaceDetected() bool {
	return r.FacialAnalysis.Score > 0
}
