package service

import (
	"context"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/validation"
)

// formFlow describes the create or update form of one entity
type formFlow[T any] struct {
	view  string
	title string
	// key is the view-model name of the entity
	key   string
	rules validation.Rules

	// build constructs the entity from validated input
	build func(rec validation.Record) *T
	// choices fetches the reference data the form offers; may be nil
	choices aggregate.Tasks
	// decorate adds the reference data to the view-model; may be nil
	decorate func(model map[string]any, entity *T, choices aggregate.Results)
	// persist stores the entity and returns the location to redirect to
	persist func(ctx context.Context, entity *T) (string, error)
}

// submitForm handles the POST half of a create or update: validate, then
// either re-render the form with the errors or persist and redirect.
// Nothing is written when validation fails.
func submitForm[T any](ctx context.Context, runner *aggregate.Runner, f formFlow[T], in validation.Input) (*Outcome, error) {
	rec, errs := f.rules.Apply(in)
	entity := f.build(rec)

	if len(errs) > 0 {
		choices, err := runner.Run(ctx, f.choices)
		if err != nil {
			return nil, err
		}
		model := f.viewModel(entity, choices)
		model["errors"] = errs
		model["submitted"] = rec.Fields()
		return Render(f.view, model), nil
	}

	location, err := f.persist(ctx, entity)
	if err != nil {
		return nil, err
	}
	return Redirect(location), nil
}

// blankForm handles the GET half of a create
func blankForm[T any](ctx context.Context, runner *aggregate.Runner, f formFlow[T]) (*Outcome, error) {
	choices, err := runner.Run(ctx, f.choices)
	if err != nil {
		return nil, err
	}
	return Render(f.view, f.viewModel(nil, choices)), nil
}

// editForm handles the GET half of an update: the entity and the reference
// data are fetched together, and a missing entity is reported as notFound
func editForm[T any](ctx context.Context, runner *aggregate.Runner, f formFlow[T], load aggregate.Task, notFound error) (*Outcome, error) {
	tasks := aggregate.Tasks{f.key: load}
	for name, task := range f.choices {
		tasks[name] = task
	}

	results, err := runner.Run(ctx, tasks)
	if err != nil {
		return nil, err
	}

	entity := aggregate.Get[*T](results, f.key)
	if entity == nil {
		return nil, notFound
	}
	return Render(f.view, f.viewModel(entity, results)), nil
}

func (f formFlow[T]) viewModel(entity *T, choices aggregate.Results) map[string]any {
	model := map[string]any{"title": f.title}
	if entity != nil {
		model[f.key] = entity
	}
	if f.decorate != nil {
		f.decorate(model, entity, choices)
	}
	return model
}

// deleteFlow describes the delete confirmation of an entity of type T whose
// deletion is blocked by dependents of type D
type deleteFlow[T, D any] struct {
	view    string
	title   string
	key     string
	listURL string

	load aggregate.Task
	// dependentsKey and dependents are empty for entities nothing references
	dependentsKey string
	dependents    aggregate.Task

	remove func(ctx context.Context) error
}

// confirmDelete handles the GET half of a delete. A missing entity redirects
// to the list instead of failing.
func confirmDelete[T, D any](ctx context.Context, runner *aggregate.Runner, f deleteFlow[T, D]) (*Outcome, error) {
	results, err := runner.Run(ctx, f.tasks())
	if err != nil {
		return nil, err
	}

	if aggregate.Get[*T](results, f.key) == nil {
		return Redirect(f.listURL), nil
	}
	return Render(f.view, f.viewModel(results)), nil
}

// guardDelete handles the POST half of a delete. The entity is removed only
// when no dependents reference it; otherwise the confirmation is rendered
// again with the current blocking list and nothing is changed.
func guardDelete[T, D any](ctx context.Context, runner *aggregate.Runner, f deleteFlow[T, D]) (*Outcome, error) {
	results, err := runner.Run(ctx, f.tasks())
	if err != nil {
		return nil, err
	}

	if aggregate.Get[*T](results, f.key) == nil {
		return Redirect(f.listURL), nil
	}
	if f.dependentsKey != "" && len(aggregate.Get[[]D](results, f.dependentsKey)) > 0 {
		return Render(f.view, f.viewModel(results)), nil
	}

	if err := f.remove(ctx); err != nil {
		return nil, err
	}
	return Redirect(f.listURL), nil
}

func (f deleteFlow[T, D]) tasks() aggregate.Tasks {
	tasks := aggregate.Tasks{f.key: f.load}
	if f.dependentsKey != "" {
		tasks[f.dependentsKey] = f.dependents
	}
	return tasks
}

func (f deleteFlow[T, D]) viewModel(results aggregate.Results) map[string]any {
	model := map[string]any{
		"title": f.title,
		f.key:   aggregate.Get[*T](results, f.key),
	}
	if f.dependentsKey != "" {
		model[f.dependentsKey] = aggregate.Get[[]D](results, f.dependentsKey)
	}
	return model
}

// loadDetail fetches an entity together with the extra reads of its detail
// page. A missing entity is reported as notFound.
func loadDetail[T any](ctx context.Context, runner *aggregate.Runner, key string, load aggregate.Task, extra aggregate.Tasks, notFound error) (*T, aggregate.Results, error) {
	tasks := aggregate.Tasks{key: load}
	for name, task := range extra {
		tasks[name] = task
	}

	results, err := runner.Run(ctx, tasks)
	if err != nil {
		return nil, nil, err
	}

	entity := aggregate.Get[*T](results, key)
	if entity == nil {
		return nil, nil, notFound
	}
	return entity, results, nil
}
