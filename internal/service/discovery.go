package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/yogeshkhant77/Booksy/internal/adapter/googlebooks"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

// ErrEmptyQuery rejects a search with no query text.
var ErrEmptyQuery = errors.New("search query is required")

// DiscoveryService fronts the external volume API with a short-lived
// response cache. Cache failures degrade to a direct upstream call.
type DiscoveryService struct {
	client   *googlebooks.Client
	cache    repository.SearchCache
	cacheTTL time.Duration
	log      logger.Logger
}

func NewDiscoveryService(client *googlebooks.Client, cache repository.SearchCache, cacheTTL time.Duration, log logger.Logger) *DiscoveryService {
	return &DiscoveryService{
		client:   client,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With("service", "discovery"),
	}
}

func (s *DiscoveryService) Search(ctx context.Context, query string, startIndex, maxResults int) (*googlebooks.SearchResult, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key := "gbooks:search:" + query + ":" + strconv.Itoa(startIndex) + ":" + strconv.Itoa(maxResults)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := s.client.Search(ctx, query, startIndex, maxResults)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, result)
	return result, nil
}

func (s *DiscoveryService) Browse(ctx context.Context, subject string, startIndex, maxResults int) (*googlebooks.SearchResult, error) {
	key := "gbooks:browse:" + subject + ":" + strconv.Itoa(startIndex) + ":" + strconv.Itoa(maxResults)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := s.client.Browse(ctx, subject, startIndex, maxResults)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, result)
	return result, nil
}

func (s *DiscoveryService) GetVolume(ctx context.Context, id string) (*googlebooks.Volume, error) {
	key := "gbooks:volume:" + id

	if s.cache != nil {
		var vol googlebooks.Volume
		if err := s.cache.GetJSON(ctx, key, &vol); err == nil {
			return &vol, nil
		}
	}

	vol, err := s.client.GetVolume(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, vol, s.cacheTTL); err != nil {
			s.log.Warnf("failed to cache volume %s: %v", id, err)
		}
	}
	return vol, nil
}

func (s *DiscoveryService) fromCache(ctx context.Context, key string) *googlebooks.SearchResult {
	if s.cache == nil {
		return nil
	}
	var result googlebooks.SearchResult
	if err := s.cache.GetJSON(ctx, key, &result); err != nil {
		return nil
	}
	return &result
}

func (s *DiscoveryService) toCache(ctx context.Context, key string, result *googlebooks.SearchResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, result, s.cacheTTL); err != nil {
		s.log.Warnf("failed to cache search %s: %v", key, err)
	}
}
