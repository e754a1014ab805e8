// Package service implements the business rules sitting between HTTP
// handlers and the repositories.
package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

type ChannelService struct {
	channelRepo repository.ChannelRepository
}

type CreateChannelInput struct {
	OwnerID     uint
	Name        string
	Handle      string
	Description string
	Category    string
}

type UpdateChannelInput struct {
	OwnerID     uint
	ChannelID   uint
	Name        string
	Description string
	Category    string
	Website     string
	Twitter     string
	Instagram   string
	Facebook    string
}

func NewChannelService(channelRepo repository.ChannelRepository) *ChannelService {
	return &ChannelService{channelRepo: channelRepo}
}

const maxChannelNameLen = 100

// CreateChannel makes a new publishing channel for a user. A user may own
// at most three channels; the first one ever created becomes the default.
func (s *ChannelService) CreateChannel(ctx context.Context, in CreateChannelInput) (*models.Channel, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Channel name is required")
	}
	if len(in.Name) > maxChannelNameLen {
		return nil, models.NewValidationError("Channel name too long (max 100 characters)")
	}
	if err := validation.ValidateHandle(in.Handle); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	category := models.ChannelCategory(in.Category)
	if in.Category == "" {
		category = models.CategoryOther
	} else if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Unknown channel category")
	}

	count, err := s.channelRepo.CountByOwner(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxChannelsPerUser {
		return nil, models.NewConflictError("Channel limit reached (max 3 per user)")
	}

	channel := &models.Channel{
		Name:        in.Name,
		Handle:      in.Handle,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		Category:    category,
		IsDefault:   count == 0,
	}
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// CreateDefaultChannel provisions the channel every user gets at
// registration: name from the full name, handle from the username.
func (s *ChannelService) CreateDefaultChannel(ctx context.Context, user *models.User) (*models.Channel, error) {
	channel := &models.Channel{
		Name:      user.FullName,
		Handle:    user.Username,
		OwnerID:   user.ID,
		Category:  models.CategoryOther,
		IsDefault: true,
	}
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

func (s *ChannelService) GetByHandle(ctx context.Context, handle string) (*models.Channel, error) {
	return s.channelRepo.GetByHandle(ctx, handle)
}

func (s *ChannelService) GetByID(ctx context.Context, id uint) (*models.Channel, error) {
	return s.channelRepo.GetByID(ctx, id)
}

func (s *ChannelService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Channel, error) {
	return s.channelRepo.ListByOwner(ctx, ownerID)
}

func (s *ChannelService) UpdateChannel(ctx context.Context, in UpdateChannelInput) (*models.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, in.ChannelID)
	if err != nil {
		return nil, err
	}
	if channel.OwnerID != in.OwnerID {
		return nil, models.NewForbiddenError("You can only update your own channels")
	}

	if in.Name != "" {
		if len(in.Name) > maxChannelNameLen {
			return nil, models.NewValidationError("Channel name too long (max 100 characters)")
		}
		channel.Name = in.Name
	}
	if in.Description != "" {
		channel.Description = in.Description
	}
	if in.Category != "" {
		category := models.ChannelCategory(in.Category)
		if !models.ValidCategory(category) {
			return nil, models.NewValidationError("Unknown channel category")
		}
		channel.Category = category
	}
	if in.Website != "" {
		channel.Website = in.Website
	}
	if in.Twitter != "" {
		channel.Twitter = in.Twitter
	}
	if in.Instagram != "" {
		channel.Instagram = in.Instagram
	}
	if in.Facebook != "" {
		channel.Facebook = in.Facebook
	}

	if err := s.channelRepo.Update(ctx, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// DeleteChannel removes a secondary, empty channel. The default channel and
// channels that still have videos cannot be deleted.
func (s *ChannelService) DeleteChannel(ctx context.Context, ownerID, channelID uint) error {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}
	if channel.OwnerID != ownerID {
		return models.NewForbiddenError("You can only delete your own channels")
	}
	if channel.IsDefault {
		return models.NewValidationError("The default channel cannot be deleted")
	}
	if channel.VideosCount > 0 {
		return models.NewValidationError("Channel still has videos; delete them first")
	}
	return s.channelRepo.Delete(ctx, channelID)
}

// SetBranding stores uploaded avatar and banner URLs on the channel.
func (s *ChannelService) SetBranding(ctx context.Context, ownerID, channelID uint, avatar, banner string) (*models.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel.OwnerID != ownerID {
		return nil, models.NewForbiddenError("You can only update your own channels")
	}
	if avatar != "" {
		channel.Avatar = avatar
	}
	if banner != "" {
		channel.Banner = banner
	}
	if err := s.channelRepo.Update(ctx, channel); err != nil {
		return nil, err
	}
	return channel, nil
}
