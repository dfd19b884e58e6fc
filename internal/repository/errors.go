package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrTipNotFound      = errors.New("TIP_NOT_FOUND")
	ErrTipDuplicate     = errors.New("TIP_DUPLICATE")
	ErrSongNotFound     = errors.New("SONG_NOT_FOUND")
	ErrTipEventNotFound = errors.New("TIP_EVENT_NOT_FOUND")
	ErrNoRowsAffected   = errors.New("NO_ROWS_AFFECTED")
)

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
