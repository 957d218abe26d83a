package domain

import "time"

// CollectionStatus is the relationship a user has with a bottle
type CollectionStatus string

const (
	StatusOwn   CollectionStatus = "own"
	StatusTried CollectionStatus = "tried"
	StatusWant  CollectionStatus = "want"
)

// SubscriptionTier of a profile
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// Profile holds a user's public profile and saved flavor preferences
type Profile struct {
	UserID              string           `json:"userId"`
	DisplayName         string           `json:"displayName,omitempty"`
	Bio                 string           `json:"bio,omitempty"`
	Location            string           `json:"location,omitempty"`
	FavoriteStyle       string           `json:"favoriteStyle,omitempty"`
	Website             string           `json:"website,omitempty"`
	TwitterHandle       string           `json:"twitterHandle,omitempty"`
	FlavorPreferences   []string         `json:"flavorPreferences"`
	AvatarURL           string           `json:"avatarUrl,omitempty"`
	OnboardingCompleted bool             `json:"onboardingCompleted"`
	SubscriptionTier    SubscriptionTier `json:"subscriptionTier"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// ProfileUpdate carries the editable profile fields
type ProfileUpdate struct {
	DisplayName         *string  `json:"displayName" validate:"omitempty,max=80"`
	Bio                 *string  `json:"bio" validate:"omitempty,max=500"`
	Location            *string  `json:"location" validate:"omitempty,max=120"`
	FavoriteStyle       *string  `json:"favoriteStyle" validate:"omitempty,max=60"`
	Website             *string  `json:"website" validate:"omitempty,url"`
	TwitterHandle       *string  `json:"twitterHandle" validate:"omitempty,max=30"`
	FlavorPreferences   []string `json:"flavorPreferences" validate:"omitempty,max=20,dive,required,max=40"`
	OnboardingCompleted *bool    `json:"onboardingCompleted"`
}

// TastingNote is a single diary entry
type TastingNote struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	BourbonID          string    `json:"bourbonId"`
	BourbonName        string    `json:"bourbonName"`
	VisibleColor       string    `json:"visibleColor,omitempty"`
	Bouquet            string    `json:"bouquet,omitempty"`
	Taste              string    `json:"taste,omitempty"`
	Finish             string    `json:"finish,omitempty"`
	OverallThoughts    string    `json:"overallThoughts,omitempty"`
	DiscernibleFlavors []string  `json:"discernibleFlavors"`
	Rating             *float64  `json:"rating,omitempty"`
	Location           string    `json:"location,omitempty"`
	Glassware          string    `json:"glassware,omitempty"`
	WaterAdded         bool      `json:"waterAdded"`
	IceAdded           bool      `json:"iceAdded"`
	PhotoURL           string    `json:"photoUrl,omitempty"`
	TastedAt           time.Time `json:"tastedAt"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TastingNoteInput is the writable part of a tasting note
type TastingNoteInput struct {
	BourbonID          string     `json:"bourbonId" validate:"required"`
	VisibleColor       string     `json:"visibleColor" validate:"omitempty,hexcolor"`
	Bouquet            string     `json:"bouquet" validate:"max=2000"`
	Taste              string     `json:"taste" validate:"max=2000"`
	Finish             string     `json:"finish" validate:"max=2000"`
	OverallThoughts    string     `json:"overallThoughts" validate:"max=4000"`
	DiscernibleFlavors []string   `json:"discernibleFlavors" validate:"max=30,dive,required,max=40"`
	Rating             *float64   `json:"rating" validate:"omitempty,min=0,max=5,halfstep"`
	Location           string     `json:"location" validate:"max=120"`
	Glassware          string     `json:"glassware" validate:"max=60"`
	WaterAdded         bool       `json:"waterAdded"`
	IceAdded           bool       `json:"iceAdded"`
	PhotoURL           string     `json:"photoUrl" validate:"omitempty,url"`
	TastedAt           *time.Time `json:"tastedAt"`
}

// Favorite marks a bourbon as a user favorite
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BourbonID string    `json:"bourbonId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CollectionItem tracks a bottle the user owns, has tried, or wants
type CollectionItem struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	BourbonID     string           `json:"bourbonId"`
	Status        CollectionStatus `json:"status"`
	PurchasePrice *float64         `json:"purchasePrice,omitempty"`
	AcquiredDate  *time.Time       `json:"acquiredDate,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// CollectionInput is the writable part of a collection item
type CollectionInput struct {
	BourbonID     string           `json:"bourbonId" validate:"required"`
	Status        CollectionStatus `json:"status" validate:"required,oneof=own tried want"`
	PurchasePrice *float64         `json:"purchasePrice" validate:"omitempty,gte=0"`
	AcquiredDate  *time.Time       `json:"acquiredDate"`
	Notes         string           `json:"notes" validate:"max=2000"`
}

// CollectionStats counts collection items per status
type CollectionStats struct {
	Own   int `json:"own"`
	Tried int `json:"tried"`
	Want  int `json:"want"`
	Total int `json:"total"`
}

// Dashboard is a per-user summary across the journal
type Dashboard struct {
	NotesCount     int             `json:"notesCount"`
	AverageRating  *float64        `json:"averageRating"`
	FavoritesCount int             `json:"favoritesCount"`
	Collection     CollectionStats `json:"collection"`
	TopFlavors     []string        `json:"topFlavors"`
}
