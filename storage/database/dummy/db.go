package dummydb

import (
	"sync"

	"github.com/trezcool/kozi/core/user"
)

type (
	DB struct {
		user     *userTable
		progress *progressTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	// progress rows keyed by userID, then videoID
	progressTable struct {
		sync.RWMutex
		table map[string]map[string]float64
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		progress: &progressTable{table: make(map[string]map[string]float64)},
	}
	return db, nil
}
