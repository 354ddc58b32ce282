package importer

import (
	"context"
	"errors"
	"fmt"

	"dummy-importer/feature/importer/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence boundary of the importer.
// Lookups return nil, nil when no row matches.
type Store interface {
	FindUserByDummyID(ctx context.Context, dummyID int) (*models.User, error)
	FindPostByDummyID(ctx context.Context, dummyID int) (*models.Post, error)

	// LockUserByDummyID and LockPostByDummyID read the latest committed row
	// with a shared lock, so a row inserted by another transaction after this
	// one started is visible.
	LockUserByDummyID(ctx context.Context, dummyID int) (*models.User, error)
	LockPostByDummyID(ctx context.Context, dummyID int) (*models.Post, error)

	SaveBank(ctx context.Context, bank *models.Bank) error
	DeleteBank(ctx context.Context, id uint) error
	SaveUser(ctx context.Context, user *models.User) error
	SavePost(ctx context.Context, post *models.Post) error

	// Transaction runs fn against a Store bound to one database transaction.
	// The transaction is rolled back when fn returns an error.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	Counts(ctx context.Context) (*Counts, error)
	UserDetail(ctx context.Context, dummyID int) (*models.User, error)
	DeleteUser(ctx context.Context, dummyID int) (bool, error)
}

// Counts holds the number of rows per imported table.
type Counts struct {
	Users int64 `json:"users"`
	Banks int64 `json:"banks"`
	Posts int64 `json:"posts"`
}

// GormStore implements Store on top of gorm.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindUserByDummyID(ctx context.Context, dummyID int) (*models.User, error) {
	return s.findUser(s.db.WithContext(ctx), dummyID)
}

func (s *GormStore) LockUserByDummyID(ctx context.Context, dummyID int) (*models.User, error) {
	return s.findUser(s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "SHARE"}), dummyID)
}

func (s *GormStore) findUser(db *gorm.DB, dummyID int) (*models.User, error) {
	var user models.User
	err := db.Preload("Bank").Where("dummy_id = ?", dummyID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", dummyID, err)
	}
	return &user, nil
}

func (s *GormStore) FindPostByDummyID(ctx context.Context, dummyID int) (*models.Post, error) {
	return s.findPost(s.db.WithContext(ctx), dummyID)
}

func (s *GormStore) LockPostByDummyID(ctx context.Context, dummyID int) (*models.Post, error) {
	return s.findPost(s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "SHARE"}), dummyID)
}

func (s *GormStore) findPost(db *gorm.DB, dummyID int) (*models.Post, error) {
	var post models.Post
	err := db.Where("dummy_id = ?", dummyID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post %d: %w", dummyID, err)
	}
	return &post, nil
}

func (s *GormStore) SaveBank(ctx context.Context, bank *models.Bank) error {
	if err := s.save(ctx, bank, bank.ID); err != nil {
		return fmt.Errorf("save bank: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteBank(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Bank{}, id).Error; err != nil {
		return fmt.Errorf("delete bank %d: %w", id, err)
	}
	return nil
}

func (s *GormStore) SaveUser(ctx context.Context, user *models.User) error {
	if err := s.save(ctx, user, user.ID); err != nil {
		return fmt.Errorf("save user %d: %w", user.DummyID, err)
	}
	return nil
}

func (s *GormStore) SavePost(ctx context.Context, post *models.Post) error {
	if err := s.save(ctx, post, post.ID); err != nil {
		return fmt.Errorf("save post %d: %w", post.DummyID, err)
	}
	return nil
}

// save inserts rows without a primary key and overwrites every column otherwise.
// Associations are never written through their owner.
func (s *GormStore) save(ctx context.Context, value any, id uint) error {
	db := s.db.WithContext(ctx)
	if id == 0 {
		return db.Omit(clause.Associations).Create(value).Error
	}
	return db.Model(value).Select("*").Omit(clause.Associations).Updates(value).Error
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Counts(ctx context.Context) (*Counts, error) {
	db := s.db.WithContext(ctx)
	var counts Counts
	if err := db.Model(&models.User{}).Count(&counts.Users).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := db.Model(&models.Bank{}).Count(&counts.Banks).Error; err != nil {
		return nil, fmt.Errorf("count banks: %w", err)
	}
	if err := db.Model(&models.Post{}).Count(&counts.Posts).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	return &counts, nil
}

// UserDetail loads a user with its bank and posts.
func (s *GormStore) UserDetail(ctx context.Context, dummyID int) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Bank").
		Preload("Posts", func(db *gorm.DB) *gorm.DB { return db.Order("dummy_id") }).
		Where("dummy_id = ?", dummyID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", dummyID, err)
	}
	return &user, nil
}

// DeleteUser removes a user together with its posts and bank.
// It reports false when no user carries dummyID.
func (s *GormStore) DeleteUser(ctx context.Context, dummyID int) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("dummy_id = ?", dummyID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, user.ID).Error; err != nil {
			return err
		}
		if user.BankID != nil {
			if err := tx.Delete(&models.Bank{}, *user.BankID).Error; err != nil {
				return err
			}
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", dummyID, err)
	}
	return deleted, nil
}
