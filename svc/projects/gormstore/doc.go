// Package gormstore is a projects.Store on top of gorm, for applications
// that already talk to their database through gorm. It expects the schema
// created by the pgstore migrations and shares a pgx pool:
//
//	db, err := gormstore.Open(pool)
//	if err != nil {
//	    return err
//	}
//	svc := projects.NewService(gormstore.New(db))
package gormstore
