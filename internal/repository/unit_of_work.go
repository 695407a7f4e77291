package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormUnitOfWork is a GORM implementation of UnitOfWork
type GormUnitOfWork struct {
	db       *gorm.DB
	users    UserRepository
	projects ProjectRepository
	tasks    TaskRepository
	comments CommentRepository
	history  HistoryRepository
}

// NewUnitOfWork creates a UnitOfWork whose repositories share db
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &GormUnitOfWork{
		db:       db,
		users:    NewUserRepository(db),
		projects: NewProjectRepository(db),
		tasks:    NewTaskRepository(db),
		comments: NewCommentRepository(db),
		history:  NewHistoryRepository(db),
	}
}

func (u *GormUnitOfWork) Users() UserRepository { return u.users }
func (u *GormUnitOfWork) Projects() ProjectRepository { return u.projects }
func (u *GormUnitOfWork) Tasks() TaskRepository { return u.tasks }
func (u *GormUnitOfWork) Comments() CommentRepository { return u.comments }
func (u *GormUnitOfWork) History() HistoryRepository { return u.history }

// Transaction runs fn inside a database transaction
func (u *GormUnitOfWork) Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}
