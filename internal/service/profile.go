package service

import (
	"context"

	"netbank/internal/api"
)

// Profile reads and updates the current user's record.
type Profile struct {
	API *api.Client
}

func (s *Profile) Load(ctx context.Context) (api.User, error) {
	return s.API.Profile(ctx)
}

// Save validates the email shape when one is set, then PUTs the edits.
func (s *Profile) Save(ctx context.Context, in api.ProfileInput) error {
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		return api.Validation("please enter a valid email address")
	}
	return s.API.UpdateProfile(ctx, in)
}
