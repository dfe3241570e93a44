// Package database opens connections to the product database.
//
// Two families are supported:
//
//   - MongoDB (ConnectMongo): the document store holding product records. The
//     returned *mongo.Database is handed to the persistence adapter as is.
//   - MySQL / SQLite (Connect): a relational product catalog accessed through
//     GORM, wrapped by persistence.Catalog.
//
// Both connectors verify the connection before returning.
//
// # Usage
//
//	db, err := database.ConnectMongo(ctx, cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
