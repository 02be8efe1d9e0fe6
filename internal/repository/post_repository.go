package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-team-api/internal/database"
	"study-team-api/internal/domain"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AllContents returns the content of every persisted post
	AllContents(ctx context.Context) ([]string, error)
	ContentsByTeam(ctx context.Context, teamID uuid.UUID) ([]string, error)

	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (likes int64, liked bool, err error)
	IsLikedBy(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	RecountLikes(ctx context.Context) (int64, error)
}

type postRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepositoryImpl{db: db}
}

func (r *postRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Omit("Comments").Create(post).Error
}

func (r *postRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByTeam returns the posts of a team, newest first
func (r *postRepositoryImpl) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update saves title and content
func (r *postRepositoryImpl) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).
		Model(post).
		Select("title", "content", "updated_at").
		Updates(post).Error
}

// Delete removes a post with its comments and likes
func (r *postRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostLike{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AllContents returns the content of every post; the orphan image sweeps scan it
func (r *postRepositoryImpl) AllContents(ctx context.Context) ([]string, error) {
	var contents []string
	if err := r.db.WithContext(database.WithOperation(ctx, "sweep_contents")).Model(&domain.Post{}).Pluck("content", &contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *postRepositoryImpl) ContentsByTeam(ctx context.Context, teamID uuid.UUID) ([]string, error) {
	var contents []string
	if err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("team_id = ?", teamID).
		Pluck("content", &contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

// ToggleLike adds the user's like, or removes it if already present, and returns the new count
func (r *postRepositoryImpl) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (int64, bool, error) {
	var (
		likes int64
		liked bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&domain.PostLike{})
		if removed.Error != nil {
			return removed.Error
		}

		delta := -1
		if removed.RowsAffected == 0 {
			if err := tx.Omit("Post").Create(&domain.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			delta = 1
			liked = true
		}

		if err := tx.Model(&domain.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).Select("likes").Where("id = ?", postID).Row().Scan(&likes)
	})
	if err != nil {
		return 0, false, err
	}
	return likes, liked, nil
}

func (r *postRepositoryImpl) IsLikedBy(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// RecountLikes rebuilds every post's like counter from the like rows
func (r *postRepositoryImpl) RecountLikes(ctx context.Context) (int64, error) {
	result := r.db.WithContext(database.WithOperation(ctx, "recount")).Exec(
		"UPDATE posts SET likes = (SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id)",
	)
	return result.RowsAffected, result.Error
}
