package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

type SubscriptionService struct {
	subRepo     repository.SubscriptionRepository
	channelRepo repository.ChannelRepository
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	channelRepo repository.ChannelRepository,
) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, channelRepo: channelRepo}
}

// Subscribe adds the user to a channel's subscribers. Subscribing to your
// own channel is rejected; subscribing twice is a conflict.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, channelID uint) (*models.Subscription, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel.OwnerID == userID {
		return nil, models.NewValidationError("You cannot subscribe to your own channel")
	}

	existing, err := s.subRepo.Find(ctx, userID, channelID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Already subscribed to this channel")
	}

	sub := &models.Subscription{SubscriberID: userID, ChannelID: channelID}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	if err := s.channelRepo.AddSubscribers(ctx, channelID, 1); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe removes the user's subscription to a channel.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, channelID uint) error {
	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		return err
	}

	existing, err := s.subRepo.Find(ctx, userID, channelID)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NewNotFoundError("Subscription", channelID)
	}

	if err := s.subRepo.Delete(ctx, existing.ID); err != nil {
		return err
	}
	return s.channelRepo.AddSubscribers(ctx, channelID, -1)
}

// IsSubscribed reports whether the user subscribes to the channel.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, userID, channelID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	existing, err := s.subRepo.Find(ctx, userID, channelID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// Subscribers pages through the users subscribed to a channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID uint, page, limit int) ([]models.User, int64, error) {
	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	return s.subRepo.ListSubscribers(ctx, channelID, limit, offset)
}

// SubscribedChannels pages through the channels a user subscribes to.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, userID uint, page, limit int) ([]models.Channel, int64, error) {
	offset := (page - 1) * limit
	return s.subRepo.ListChannels(ctx, userID, limit, offset)
}
