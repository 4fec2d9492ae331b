package service

import (
	"context"
	"time"

	"nemukerja/internal/core/cache"
	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
)

// Search composes the public, filtered, paginated view over open listings.
// Filters are independent and conjunctive; malformed values degrade to "no
// filter applied" rather than erroring.
type Search struct {
	repos    *repo.Repos
	cache    *cache.Cache
	pageSize int
}

func NewSearch(repos *repo.Repos, c *cache.Cache, pageSize int) *Search {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &Search{repos: repos, cache: c, pageSize: pageSize}
}

type SearchQuery struct {
	Keyword   string
	Location  string
	Company   string
	MinSalary string
	Page      int
}

type SearchPage struct {
	Items    []domain.JobListing `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"pageSize"`
	Pages    int                 `json:"pages"`
}

func (s *Search) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	items, total, err := s.repos.Jobs.Search(ctx, repo.Filter{
		Keyword:   q.Keyword,
		Location:  q.Location,
		Company:   q.Company,
		MinSalary: q.MinSalary,
	}, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}
	pages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	return &SearchPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: s.pageSize,
		Pages:    pages,
	}, nil
}

// Latest is the pull-based feed that replaced the notify-every-applicant
// broadcast on job creation. Cached briefly; writers invalidate the key.
func (s *Search) Latest(ctx context.Context, limit int) ([]domain.JobListing, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	load := func(ctx context.Context) (*[]domain.JobListing, error) {
		js, err := s.repos.Jobs.LatestOpen(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &js, nil
	}
	// 只缓存默认长度的 feed，其它长度直查
	if s.cache == nil || limit != 10 {
		js, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return *js, nil
	}
	js, err := cache.GetOrLoadJSON[[]domain.JobListing](s.cache, ctx, "jobs:latest", 60*time.Second, load)
	if err != nil {
		return nil, err
	}
	if js == nil {
		return nil, nil
	}
	return *js, nil
}
