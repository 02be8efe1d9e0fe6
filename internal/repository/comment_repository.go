package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"study-team-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
	UpdateContent(ctx context.Context, comment *domain.Comment, content string) error
	DeleteWithReplies(ctx context.Context, comment *domain.Comment) ([]uuid.UUID, error)
}

type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByPostID returns every comment and reply of a post in insertion order
func (r *commentRepositoryImpl) FindByPostID(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateContent replaces the content and stamps UpdatedAt
func (r *commentRepositoryImpl) UpdateContent(ctx context.Context, comment *domain.Comment, content string) error {
	now := time.Now().UTC()
	if err := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{"content": content, "updated_at": now}).Error; err != nil {
		return err
	}
	comment.Content = content
	comment.UpdatedAt = &now
	return nil
}

// DeleteWithReplies deletes the comment and, for a main comment, every reply to it.
// It returns the ids actually removed.
func (r *commentRepositoryImpl) DeleteWithReplies(ctx context.Context, comment *domain.Comment) ([]uuid.UUID, error) {
	var deleted []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted = deleted[:0]
		if !comment.IsReply {
			var replyIDs []uuid.UUID
			if err := tx.Model(&domain.Comment{}).
				Where("parent_comment_id = ?", comment.ID).
				Pluck("id", &replyIDs).Error; err != nil {
				return err
			}
			if len(replyIDs) > 0 {
				if err := tx.Where("id IN ?", replyIDs).Delete(&domain.Comment{}).Error; err != nil {
					return err
				}
			}
			deleted = append(deleted, replyIDs...)
		}

		result := tx.Where("id = ?", comment.ID).Delete(&domain.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		deleted = append([]uuid.UUID{comment.ID}, deleted...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
