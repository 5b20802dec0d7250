// Package service implements the catalog's form controllers.
//
// Every flow returns an Outcome: either a view to render with its view-model
// or a location to redirect to. Validation failures and blocked deletions are
// ordinary renders. Only store failures and missing entities come back as
// errors.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Services define the repository interfaces they depend on
//   - Reads that need several documents go through an aggregate.Runner
//
// # Flows
//
// Each entity service exposes the same set of flows:
//
//	List, Detail
//	CreateForm (GET), Create (POST)
//	UpdateForm (GET), Update (POST)
//	DeleteForm (GET), Delete (POST)
//
// Create and Update share one pipeline (submitForm): validate the input
// against the entity's rule table, then either re-render the form with the
// errors and the reference data or persist and redirect. Delete refuses to
// remove an entity that other documents still reference (guardDelete).
//
// # Example Usage
//
//	authors := NewAuthorService(AuthorServiceConfig{
//	    AuthorRepo: authorRepository,
//	    BookRepo:   bookRepository,
//	    Runner:     aggregate.NewRunner(aggregate.Options{Timeout: 5 * time.Second}),
//	})
//	outcome, err := authors.Create(ctx, validation.FromValues(r.PostForm))
package service
