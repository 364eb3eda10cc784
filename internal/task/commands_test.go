package task

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() AppState {
	return AppState{
		Items: []Task{
			{ID: "a", Title: "Road trip", Priority: PriorityMedium, Tags: []string{"weekend"}},
			{ID: "b", Title: "Prepare presentation", Due: "2025-03-14", Priority: PriorityHigh, Tags: []string{"work"}},
			{ID: "c", Title: "Gym session", Priority: PriorityLow, Tags: []string{"health"}},
		},
		Filter: FilterAll,
	}
}

func TestAddTask(t *testing.T) {
	s := sampleState()
	next := AddTask(s, "n1", "Call mom #family", "", PriorityLow)

	require.Len(t, next.Items, 4)
	got := next.Items[0]
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, "Call mom", got.Title)
	assert.Equal(t, []string{"family"}, got.Tags)
	assert.False(t, got.Done)
	assert.Equal(t, PriorityLow, got.Priority)
	assert.Len(t, s.Items, 3, "input state is not modified")
}

func TestAddTask_BlankIsNoop(t *testing.T) {
	s := sampleState()
	for _, in := range []string{"", "   ", "\t\n"} {
		next := AddTask(s, "x", in, "", PriorityMedium)
		assert.Equal(t, s.Items, next.Items)
	}
}

func TestAddTask_TagsOnlyKeepsRawTitle(t *testing.T) {
	next := AddTask(DefaultState(), "x", "  #errand #home ", "2025-01-02", PriorityHigh)
	require.Len(t, next.Items, 1)
	assert.Equal(t, "#errand #home", next.Items[0].Title)
	assert.Equal(t, []string{"errand", "home"}, next.Items[0].Tags)
	assert.Equal(t, "2025-01-02", next.Items[0].Due)
}

func TestToggleTask_Involution(t *testing.T) {
	s := sampleState()
	once := ToggleTask(s, "b")
	assert.True(t, once.Items[1].Done)
	assert.False(t, s.Items[1].Done, "no aliasing of prior state")

	twice := ToggleTask(once, "b")
	assert.Equal(t, s, twice)
}

func TestToggleTask_MissingID(t *testing.T) {
	s := sampleState()
	assert.Equal(t, s, ToggleTask(s, "nope"))
}

func TestDeleteTask(t *testing.T) {
	s := sampleState()
	next := DeleteTask(s, "b")
	require.Len(t, next.Items, 2)
	assert.Equal(t, "a", next.Items[0].ID)
	assert.Equal(t, "c", next.Items[1].ID)
	assert.Equal(t, s.Items, DeleteTask(s, "missing").Items)
}

func TestUpdateTask_TitleReextractsTags(t *testing.T) {
	s := sampleState()
	title := "Road trip #Beach #sun"
	next := UpdateTask(s, "a", Patch{Title: &title})
	assert.Equal(t, title, next.Items[0].Title)
	assert.Equal(t, []string{"beach", "sun"}, next.Items[0].Tags)
	assert.Equal(t, []string{"weekend"}, s.Items[0].Tags)
}

func TestUpdateTask_OtherFieldsKeepTags(t *testing.T) {
	s := sampleState()
	due := "2026-01-01"
	p := PriorityHigh
	done := true
	next := UpdateTask(s, "c", Patch{Due: &due, Priority: &p, Done: &done})
	got := next.Items[2]
	assert.Equal(t, "2026-01-01", got.Due)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.True(t, got.Done)
	assert.Equal(t, []string{"health"}, got.Tags)
}

func TestClearCompleted(t *testing.T) {
	s := sampleState()
	s = ToggleTask(s, "a")
	s = ToggleTask(s, "c")
	next := ClearCompleted(s)
	require.Len(t, next.Items, 1)
	assert.Equal(t, "b", next.Items[0].ID)
}

func TestClearCompleted_KeepsRelativeOrder(t *testing.T) {
	var s AppState
	for i := 0; i < 10; i++ {
		s.Items = append(s.Items, Task{ID: fmt.Sprint(i), Title: "t", Done: i%3 == 0, Priority: PriorityLow})
	}
	next := ClearCompleted(s)
	var ids []string
	for _, t := range next.Items {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []string{"1", "2", "4", "5", "7", "8"}, ids)
}

func TestSetFilterAndSearch(t *testing.T) {
	s := SetFilter(sampleState(), FilterDone)
	assert.Equal(t, FilterDone, s.Filter)

	s = SetSearch(s, "  FaMily ")
	assert.Equal(t, "family", s.Search)
}

func TestAppState_JSONRoundTrip(t *testing.T) {
	s := AddTask(sampleState(), "n", "Call mom #family", "2025-05-05", PriorityLow)
	s = ToggleTask(s, "n")
	s = SetSearch(SetFilter(s, FilterActive), "Trip")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	var back AppState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
	assert.NoError(t, Validate(back))
}

func TestAddTask_DropsUnparseableDue(t *testing.T) {
	next := AddTask(DefaultState(), "x", "Pay rent", "next week", Priority("urgent"))
	require.Len(t, next.Items, 1)
	assert.Empty(t, next.Items[0].Due)
	assert.Equal(t, PriorityMedium, next.Items[0].Priority)
	assert.NoError(t, Validate(next))
}

func TestUpdateTask_IgnoresBlankTitle(t *testing.T) {
	s := sampleState()
	blank := "  \t "
	assert.Equal(t, s, UpdateTask(s, "a", Patch{Title: &blank}))

	padded := "  Beach #sun "
	next := UpdateTask(s, "a", Patch{Title: &padded})
	assert.Equal(t, "Beach #sun", next.Items[0].Title)
	assert.Equal(t, []string{"sun"}, next.Items[0].Tags)
}
