package service

import (
	"context"
	"fmt"

	"travel-diary/internal/model"
	"travel-diary/internal/repository"
)

// PostInput represents data required to publish a post.
type PostInput struct {
	Title    string
	Body     string
	Price    string
	Places   string
	PhotoURL string
	VideoURL string
}

// Page is one slice of a post listing. Pages are 1-based; a page past
// the end is empty rather than an error.
type Page struct {
	Posts   []model.Post
	Number  int
	HasNext bool
	HasPrev bool
}

// FeedService builds the paginated post listings and publishes posts.
type FeedService struct {
	posts    *repository.PostRepository
	pageSize int
}

func NewFeedService(posts *repository.PostRepository, pageSize int) *FeedService {
	if pageSize <= 0 {
		pageSize = 3
	}
	return &FeedService{posts: posts, pageSize: pageSize}
}

// Publish creates a post owned by the author.
func (s *FeedService) Publish(ctx context.Context, author *model.User, input PostInput) (*model.Post, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	post := model.Post{
		UserID:   author.ID,
		Title:    input.Title,
		Body:     input.Body,
		Price:    input.Price,
		Places:   input.Places,
		PhotoURL: input.PhotoURL,
		VideoURL: input.VideoURL,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Home returns the viewer's feed: their own posts plus posts from
// everyone they follow.
func (s *FeedService) Home(ctx context.Context, viewer *model.User, page int) (Page, error) {
	return s.paginate(page, func(offset, limit int) ([]model.Post, error) {
		return s.posts.ListFeed(ctx, viewer.ID, offset, limit)
	})
}

// Explore returns all posts across the site.
func (s *FeedService) Explore(ctx context.Context, page int) (Page, error) {
	return s.paginate(page, func(offset, limit int) ([]model.Post, error) {
		return s.posts.ListAll(ctx, offset, limit)
	})
}

// ByUser returns one author's posts for their profile page.
func (s *FeedService) ByUser(ctx context.Context, author *model.User, page int) (Page, error) {
	return s.paginate(page, func(offset, limit int) ([]model.Post, error) {
		return s.posts.ListByUser(ctx, author.ID, offset, limit)
	})
}

// paginate fetches one extra row past the page to learn whether a next
// page exists without a second count query.
func (s *FeedService) paginate(page int, fetch func(offset, limit int) ([]model.Post, error)) (Page, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * s.pageSize
	posts, err := fetch(offset, s.pageSize+1)
	if err != nil {
		return Page{}, err
	}

	result := Page{Number: page, HasPrev: page > 1}
	if len(posts) > s.pageSize {
		result.HasNext = true
		posts = posts[:s.pageSize]
	}
	result.Posts = posts
	return result, nil
}
