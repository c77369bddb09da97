package database

import "questa/internal/models"

// PersistentModels returns every model that maps to a database table, in
// migration order: parents before children so foreign keys resolve.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.CommentLike{},
	}
}
