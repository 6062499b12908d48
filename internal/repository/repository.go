package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrVersionConflict = errors.New("version conflict")
)

type Repository struct {
	User      UserRepository
	Interview InterviewRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		User:      UserRepository{db: db},
		Interview: InterviewRepository{db: db},
	}
}
