package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conbi/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return New(db)
}

func TestCreateAndListTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		task := models.Task{
			UserID:   "user-1",
			Title:    fmt.Sprintf("task %d", i),
			Status:   models.StatusPending,
			Priority: models.PriorityMedium,
		}
		require.NoError(t, s.CreateTask(ctx, &task))
		require.NotZero(t, task.ID)
	}

	tasks, err := s.ListTasks(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// Newest first.
	require.Equal(t, "task 3", tasks[0].Title)
	require.Equal(t, "task 1", tasks[2].Title)
}

func TestListTasksScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mine := models.Task{UserID: "user-1", Title: "mine"}
	theirs := models.Task{UserID: "user-2", Title: "theirs"}
	require.NoError(t, s.CreateTask(ctx, &mine))
	require.NoError(t, s.CreateTask(ctx, &theirs))

	tasks, err := s.ListTasks(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "mine", tasks[0].Title)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	s := newTestStore(t)

	err := s.CreateTask(context.Background(), &models.Task{UserID: "user-1", Title: "   "})
	require.Error(t, err)
}

func TestUpdateTaskClearsDueDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task := models.Task{UserID: "user-1", Title: "dated", DueDate: &due}
	require.NoError(t, s.CreateTask(ctx, &task))

	task.DueDate = nil
	task.Status = models.StatusInProgress
	require.NoError(t, s.UpdateTask(ctx, &task))

	tasks, err := s.ListTasks(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Nil(t, tasks[0].DueDate)
	require.Equal(t, models.StatusInProgress, tasks[0].Status)
}

func TestUpdateTaskWrongOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := models.Task{UserID: "user-1", Title: "mine"}
	require.NoError(t, s.CreateTask(ctx, &task))

	task.UserID = "user-2"
	task.Title = "hijacked"
	require.Error(t, s.UpdateTask(ctx, &task))
}

func TestDeleteTaskRemovesAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := models.Task{UserID: "user-1", Title: "doomed"}
	require.NoError(t, s.CreateTask(ctx, &task))

	cat := models.Category{UserID: "user-1", Name: "work", Color: "#3B82F6"}
	require.NoError(t, s.CreateCategory(ctx, &cat))
	require.NoError(t, s.ReplaceTaskCategories(ctx, task.ID, []uint{cat.ID}))

	require.NoError(t, s.DeleteTask(ctx, task.ID, "user-1"))

	ids, err := s.TaskCategoryIDs(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, ids)

	// A second delete reports not found.
	require.Error(t, s.DeleteTask(ctx, task.ID, "user-1"))
}

func TestCategoriesOrderedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"work", "errands", "home"} {
		cat := models.Category{UserID: "user-1", Name: name, Color: "#10B981"}
		require.NoError(t, s.CreateCategory(ctx, &cat))
	}

	categories, err := s.ListCategories(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, categories, 3)
	require.Equal(t, "errands", categories[0].Name)
	require.Equal(t, "home", categories[1].Name)
	require.Equal(t, "work", categories[2].Name)
}

func TestCreateCategoryTrimsName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := models.Category{UserID: "user-1", Name: "  focus  ", Color: "#EC4899"}
	require.NoError(t, s.CreateCategory(ctx, &cat))
	require.Equal(t, "focus", cat.Name)

	empty := models.Category{UserID: "user-1", Name: "   "}
	require.Error(t, s.CreateCategory(ctx, &empty))
}

func TestReplaceTaskCategoriesRewritesSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := models.Task{UserID: "user-1", Title: "tagged"}
	require.NoError(t, s.CreateTask(ctx, &task))

	var cats []models.Category
	for _, name := range []string{"a", "b", "c"} {
		cat := models.Category{UserID: "user-1", Name: name, Color: "#8B5CF6"}
		require.NoError(t, s.CreateCategory(ctx, &cat))
		cats = append(cats, cat)
	}

	require.NoError(t, s.ReplaceTaskCategories(ctx, task.ID, []uint{cats[0].ID, cats[1].ID}))
	ids, err := s.TaskCategoryIDs(ctx, task.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{cats[0].ID, cats[1].ID}, ids)

	// Rewriting to {b, c} leaves no residue of {a}.
	require.NoError(t, s.ReplaceTaskCategories(ctx, task.ID, []uint{cats[1].ID, cats[2].ID}))
	ids, err = s.TaskCategoryIDs(ctx, task.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{cats[1].ID, cats[2].ID}, ids)
}

func TestReplaceTaskCategoriesEmptyAndDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := models.Task{UserID: "user-1", Title: "tagged"}
	require.NoError(t, s.CreateTask(ctx, &task))

	cat := models.Category{UserID: "user-1", Name: "solo", Color: "#F59E0B"}
	require.NoError(t, s.CreateCategory(ctx, &cat))

	// Duplicate ids collapse to one row.
	require.NoError(t, s.ReplaceTaskCategories(ctx, task.ID, []uint{cat.ID, cat.ID}))
	ids, err := s.TaskCategoryIDs(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{cat.ID}, ids)

	// An empty set clears everything.
	require.NoError(t, s.ReplaceTaskCategories(ctx, task.ID, nil))
	ids, err = s.TaskCategoryIDs(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestCreateProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profile := models.Profile{ID: "user-1", Email: "a@b.c", FullName: "Ada"}
	require.NoError(t, s.CreateProfile(ctx, &profile))

	// Same id again violates the primary key.
	dup := models.Profile{ID: "user-1", Email: "a@b.c", FullName: "Ada"}
	require.Error(t, s.CreateProfile(ctx, &dup))
}
