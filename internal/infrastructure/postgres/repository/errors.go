package repository

import (
	"errors"

	"github.com/drovo/drovo-service/internal/domain"
	"gorm.io/gorm"
)

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	}
	return err
}
