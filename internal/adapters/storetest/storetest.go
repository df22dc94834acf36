// Package storetest holds the behavioral contract shared by every repository
// implementation. Adapter test files call Run with a factory that returns a
// fresh, empty pair of repositories for each subtest.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/label"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Factory returns empty repositories that share label state.
type Factory func(t *testing.T) (ports.TodoRepository, ports.LabelRepository)

// Run executes the full repository contract against the given factory.
func Run(t *testing.T, newRepos Factory) {
	t.Helper()

	t.Run("CreateThenFind", func(t *testing.T) { testCreateThenFind(t, newRepos) })
	t.Run("FindMissing", func(t *testing.T) { testFindMissing(t, newRepos) })
	t.Run("AllNewestFirst", func(t *testing.T) { testAllNewestFirst(t, newRepos) })
	t.Run("AllEmpty", func(t *testing.T) { testAllEmpty(t, newRepos) })
	t.Run("DeleteTwice", func(t *testing.T) { testDeleteTwice(t, newRepos) })
	t.Run("IDsNotReused", func(t *testing.T) { testIDsNotReused(t, newRepos) })
	t.Run("PartialUpdate", func(t *testing.T) { testPartialUpdate(t, newRepos) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newRepos) })
	t.Run("UpdateLabels", func(t *testing.T) { testUpdateLabels(t, newRepos) })
	t.Run("UpdateUnknownLabel", func(t *testing.T) { testUpdateUnknownLabel(t, newRepos) })
	t.Run("ClearLabels", func(t *testing.T) { testClearLabels(t, newRepos) })
	t.Run("DuplicateLabel", func(t *testing.T) { testDuplicateLabel(t, newRepos) })
	t.Run("LabelsAscending", func(t *testing.T) { testLabelsAscending(t, newRepos) })
	t.Run("DeleteLabelDetaches", func(t *testing.T) { testDeleteLabelDetaches(t, newRepos) })
	t.Run("DeleteLabelMissing", func(t *testing.T) { testDeleteLabelMissing(t, newRepos) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, newRepos) })
}

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func mustCreateTodo(t *testing.T, repo ports.TodoRepository, text string) *todo.Todo {
	t.Helper()
	created, err := repo.Create(context.Background(), todo.Create{Text: text})
	if err != nil {
		t.Fatalf("Create(%q) error = %v", text, err)
	}
	return created
}

func mustCreateLabel(t *testing.T, repo ports.LabelRepository, name string) *label.Label {
	t.Helper()
	created, err := repo.Create(context.Background(), label.Create{Name: name})
	if err != nil {
		t.Fatalf("Create label %q error = %v", name, err)
	}
	return created
}

func labelNames(labels []label.Label) []string {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	return names
}

func requireNotFound(t *testing.T, err error, id int64) {
	t.Helper()
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %T, want *domain.NotFoundError", err)
	}
	if nf.ID != id {
		t.Errorf("NotFoundError.ID = %d, want %d", nf.ID, id)
	}
}

func testCreateThenFind(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)
	ctx := context.Background()

	created := mustCreateTodo(t, todos, "buy milk")
	if created.ID <= 0 {
		t.Errorf("ID = %d, want positive", created.ID)
	}
	if created.Text != "buy milk" || created.Completed || len(created.Labels) != 0 {
		t.Errorf("Create() = %+v, want text=buy milk completed=false no labels", created)
	}

	found, err := todos.Find(ctx, created.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found.ID != created.ID || found.Text != "buy milk" || found.Completed {
		t.Errorf("Find() = %+v, want %+v", found, created)
	}
}

func testFindMissing(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)

	_, err := todos.Find(context.Background(), 404)
	requireNotFound(t, err, 404)
}

func testAllNewestFirst(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)

	a := mustCreateTodo(t, todos, "a")
	b := mustCreateTodo(t, todos, "b")
	c := mustCreateTodo(t, todos, "c")

	all, err := todos.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(all))
	}
	want := []int64{c.ID, b.ID, a.ID}
	for i, td := range all {
		if td.ID != want[i] {
			t.Errorf("All()[%d].ID = %d, want %d", i, td.ID, want[i])
		}
	}
}

func testAllEmpty(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)

	all, err := todos.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("len(All()) = %d, want 0", len(all))
	}
}

func testDeleteTwice(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)
	ctx := context.Background()

	created := mustCreateTodo(t, todos, "x")

	if err := todos.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first Delete() error = %v", err)
	}
	requireNotFound(t, todos.Delete(ctx, created.ID), created.ID)

	_, err := todos.Find(ctx, created.ID)
	requireNotFound(t, err, created.ID)
}

func testIDsNotReused(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)
	ctx := context.Background()

	a := mustCreateTodo(t, todos, "a")
	b := mustCreateTodo(t, todos, "b")
	if err := todos.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	c := mustCreateTodo(t, todos, "c")

	if c.ID == a.ID || c.ID == b.ID {
		t.Errorf("new ID %d collides with earlier IDs %d, %d", c.ID, a.ID, b.ID)
	}

	found, err := todos.Find(ctx, b.ID)
	if err != nil {
		t.Fatalf("Find(b) error = %v", err)
	}
	if found.Text != "b" {
		t.Errorf("Find(b).Text = %q, want %q", found.Text, "b")
	}
}

func testPartialUpdate(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)
	ctx := context.Background()

	created := mustCreateTodo(t, todos, "a")

	updated, err := todos.Update(ctx, created.ID, todo.Update{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update(completed) error = %v", err)
	}
	if updated.Text != "a" || !updated.Completed {
		t.Errorf("Update(completed) = %+v, want text=a completed=true", updated)
	}

	updated, err = todos.Update(ctx, created.ID, todo.Update{Text: strPtr("b")})
	if err != nil {
		t.Fatalf("Update(text) error = %v", err)
	}
	if updated.Text != "b" || !updated.Completed {
		t.Errorf("Update(text) = %+v, want text=b completed=true", updated)
	}

	updated, err = todos.Update(ctx, created.ID, todo.Update{})
	if err != nil {
		t.Fatalf("Update(empty) error = %v", err)
	}
	if updated.Text != "b" || !updated.Completed {
		t.Errorf("Update(empty) = %+v, want unchanged", updated)
	}

	found, err := todos.Find(ctx, created.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found.Text != "b" || !found.Completed {
		t.Errorf("Find() after updates = %+v, want text=b completed=true", found)
	}
}

func testUpdateMissing(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)

	_, err := todos.Update(context.Background(), 77, todo.Update{Text: strPtr("x")})
	requireNotFound(t, err, 77)
}

func testUpdateLabels(t *testing.T, newRepos Factory) {
	todos, labels := newRepos(t)
	ctx := context.Background()

	home := mustCreateLabel(t, labels, "home")
	work := mustCreateLabel(t, labels, "work")
	created := mustCreateTodo(t, todos, "a")

	updated, err := todos.Update(ctx, created.ID, todo.Update{Labels: []int64{work.ID, home.ID, work.ID}})
	if err != nil {
		t.Fatalf("Update(labels) error = %v", err)
	}
	if got := labelNames(updated.Labels); fmt.Sprint(got) != "[work home]" {
		t.Errorf("Update(labels).Labels = %v, want [work home]", got)
	}

	found, err := todos.Find(ctx, created.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got := labelNames(found.Labels); fmt.Sprint(got) != "[work home]" {
		t.Errorf("Find().Labels = %v, want [work home]", got)
	}

	// A scalar-only update keeps the label set.
	updated, err = todos.Update(ctx, created.ID, todo.Update{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update(completed) error = %v", err)
	}
	if len(updated.Labels) != 2 {
		t.Errorf("labels after scalar update = %v, want 2 labels", labelNames(updated.Labels))
	}

	all, err := todos.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 || len(all[0].Labels) != 2 {
		t.Errorf("All() = %+v, want one todo with two labels", all)
	}
}

func testUpdateUnknownLabel(t *testing.T, newRepos Factory) {
	todos, labels := newRepos(t)
	ctx := context.Background()

	home := mustCreateLabel(t, labels, "home")
	created := mustCreateTodo(t, todos, "a")

	_, err := todos.Update(ctx, created.ID, todo.Update{
		Text:   strPtr("changed"),
		Labels: []int64{home.ID, 9999},
	})
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
	var ref *domain.InvalidReferenceError
	if !errors.As(err, &ref) || ref.ID != 9999 {
		t.Errorf("err = %#v, want InvalidReferenceError for 9999", err)
	}

	found, err := todos.Find(ctx, created.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found.Text != "a" || len(found.Labels) != 0 {
		t.Errorf("Find() = %+v, want unchanged todo", found)
	}
}

func testClearLabels(t *testing.T, newRepos Factory) {
	todos, labels := newRepos(t)
	ctx := context.Background()

	home := mustCreateLabel(t, labels, "home")
	created := mustCreateTodo(t, todos, "a")

	if _, err := todos.Update(ctx, created.ID, todo.Update{Labels: []int64{home.ID}}); err != nil {
		t.Fatalf("Update(labels) error = %v", err)
	}
	updated, err := todos.Update(ctx, created.ID, todo.Update{Labels: []int64{}})
	if err != nil {
		t.Fatalf("Update(clear) error = %v", err)
	}
	if len(updated.Labels) != 0 {
		t.Errorf("Labels = %v, want none", labelNames(updated.Labels))
	}
}

func testDuplicateLabel(t *testing.T, newRepos Factory) {
	_, labels := newRepos(t)

	first := mustCreateLabel(t, labels, "x")

	_, err := labels.Create(context.Background(), label.Create{Name: "x"})
	var dup *domain.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want *domain.DuplicateError", err)
	}
	if dup.ID != first.ID {
		t.Errorf("DuplicateError.ID = %d, want %d", dup.ID, first.ID)
	}

	all, err := labels.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(All()) = %d, want 1", len(all))
	}
}

func testLabelsAscending(t *testing.T, newRepos Factory) {
	_, labels := newRepos(t)

	a := mustCreateLabel(t, labels, "a")
	b := mustCreateLabel(t, labels, "b")

	all, err := labels.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != a.ID || all[1].ID != b.ID {
		t.Errorf("All() = %+v, want [%d %d]", all, a.ID, b.ID)
	}
}

func testDeleteLabelDetaches(t *testing.T, newRepos Factory) {
	todos, labels := newRepos(t)
	ctx := context.Background()

	home := mustCreateLabel(t, labels, "home")
	work := mustCreateLabel(t, labels, "work")
	created := mustCreateTodo(t, todos, "a")
	if _, err := todos.Update(ctx, created.ID, todo.Update{Labels: []int64{home.ID, work.ID}}); err != nil {
		t.Fatalf("Update(labels) error = %v", err)
	}

	if err := labels.Delete(ctx, home.ID); err != nil {
		t.Fatalf("Delete label error = %v", err)
	}

	found, err := todos.Find(ctx, created.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got := labelNames(found.Labels); fmt.Sprint(got) != "[work]" {
		t.Errorf("Labels after delete = %v, want [work]", got)
	}
}

func testDeleteLabelMissing(t *testing.T, newRepos Factory) {
	_, labels := newRepos(t)

	requireNotFound(t, labels.Delete(context.Background(), 12), 12)
}

func testConcurrentCreates(t *testing.T, newRepos Factory) {
	todos, _ := newRepos(t)
	ctx := context.Background()

	const workers = 8
	const perWorker = 10

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				if _, err := todos.Create(ctx, todo.Create{Text: fmt.Sprintf("w%d-%d", w, i)}); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Create() error = %v", err)
	}

	all, err := todos.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != workers*perWorker {
		t.Fatalf("len(All()) = %d, want %d", len(all), workers*perWorker)
	}
	seen := make(map[int64]bool, len(all))
	for _, td := range all {
		if seen[td.ID] {
			t.Errorf("duplicate ID %d", td.ID)
		}
		seen[td.ID] = true
	}
}
