// Package projects assigns short unique keys to projects ("FL" for
// "Fiesta Lama") on creation, on edit, and in a one-off backfill over
// projects created before keys existed.
//
// Key rules live in pkg/projectkey; this package adds the parts that need
// the store. NewService wires them on top of a Store:
//
//	svc := projects.NewService(store,
//	    projects.WithLogger(log),
//	    projects.WithBackfillConcurrency(4),
//	)
//
//	p, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
//	if fields := projects.FieldErrors(err); fields != nil {
//	    // render fields.Get("key") next to the input
//	}
//
// # Keys
//
// A key typed by the user is trimmed, uppercased and validated; if another
// project owns it the request fails with projectkey.ErrTaken. Without a key
// one is derived from the name, and when the derived key is taken the
// service tries FL1, FL2, ... until one is free. Editing a project never
// conflicts with its own key.
//
// The store's unique index on upper(key) decides races between concurrent
// writers. A write rejected with ErrDuplicateKey is resolved and retried
// once, after which the failure is reported as projectkey.ErrTaken.
//
// # Backfill
//
// Backfill assigns derived keys to every project without one, in
// (created_at, id) order. A failing project is reported in its result and
// the run continues. Projects that already have a key are never listed, so
// running it again does nothing. PlanBackfill shows the base keys a run
// would start from without touching the store.
//
// Stores: MemoryStore here, pgstore (pgx) and gormstore (gorm) in
// subpackages.
package projects
