package storage

import (
	"staffclock/storage/database"
	"staffclock/storage/redis"
)

// Init initializes the storage layer.
func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	return nil
}
