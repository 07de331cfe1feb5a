package campaigns

// CreateCampaignRequest is the creation payload. OwnerID is accepted in
// the body for wire compatibility but always overwritten with the
// acting actor's id.
type CreateCampaignRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=draft active archived"`
	OwnerID     int64  `json:"ownerId"`
}

// UpdateCampaignRequest modifies a campaign's mutable fields. Ownership
// is not among them.
type UpdateCampaignRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status" validate:"required,oneof=draft active archived"`
}

// ListCampaignsRequest filters the campaign listing. OwnerID is set by
// the ownership scope, never by the caller.
type ListCampaignsRequest struct {
	OwnerID *int64
	Status  *string
	Search  *string
	Page    int
	PerPage int
}
