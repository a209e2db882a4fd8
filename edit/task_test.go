package edit

import (
	"errors"
	"testing"

	"github.com/dshills/mdedit/document"
)

func taskEditor(entries ...document.TaskEntry) *Editor {
	return newEditor(func(b *document.Builder) { b.TaskList(entries...) })
}

func readTaskItems(t *testing.T, e *Editor) []document.ListItem {
	t.Helper()
	var items []document.ListItem
	e.Read(func(d *document.Document) {
		list := d.Nodes[0].(*document.List)
		items = make([]document.ListItem, len(list.Items))
		for i, item := range list.Items {
			items[i] = item.Clone()
		}
	})
	return items
}

func TestAddAndRemoveTaskItem(t *testing.T) {
	e := taskEditor(document.TaskEntry{Text: "first"})

	if err := e.AddTaskItem(0, 1, "second", true); err != nil {
		t.Fatalf("AddTaskItem: %v", err)
	}
	items := readTaskItems(t, e)
	if len(items) != 2 || items[1].Text() != "second" || !*items[1].Checked {
		t.Fatalf("items = %+v", items)
	}

	if err := e.RemoveTaskItem(0, 0); err != nil {
		t.Fatalf("RemoveTaskItem: %v", err)
	}
	items = readTaskItems(t, e)
	if len(items) != 1 || items[0].Text() != "second" {
		t.Fatalf("items after remove = %+v", items)
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	items = readTaskItems(t, e)
	if len(items) != 2 || items[0].Text() != "first" {
		t.Errorf("items after undo = %+v", items)
	}
}

func TestRemoveLastTaskItemFails(t *testing.T) {
	e := taskEditor(document.TaskEntry{Text: "only"})

	err := e.RemoveTaskItem(0, 0)
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("error = %v, want ErrUnsupportedOperation", err)
	}
	if len(readTaskItems(t, e)) != 1 {
		t.Error("list must keep its only item")
	}
}

func TestToggleTask(t *testing.T) {
	e := taskEditor(document.TaskEntry{Text: "todo"})

	if err := e.ToggleTask(0, 0); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if items := readTaskItems(t, e); !*items[0].Checked {
		t.Error("item should be checked after toggle")
	}

	// Toggle's undo is another flip.
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if items := readTaskItems(t, e); *items[0].Checked {
		t.Error("item should be unchecked after undo")
	}
	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if items := readTaskItems(t, e); !*items[0].Checked {
		t.Error("item should be checked after redo")
	}
}

func TestToggleTaskOnNonTaskList(t *testing.T) {
	e := newEditor(func(b *document.Builder) { b.UnorderedList("plain") })

	if err := e.ToggleTask(0, 0); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("error = %v, want ErrUnsupportedOperation", err)
	}
}

func TestEditTaskItem(t *testing.T) {
	e := taskEditor(document.TaskEntry{Text: "draft"})

	if err := e.EditTaskItem(0, 0, "final"); err != nil {
		t.Fatal(err)
	}
	if items := readTaskItems(t, e); items[0].Text() != "final" {
		t.Errorf("text = %q, want %q", items[0].Text(), "final")
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if items := readTaskItems(t, e); items[0].Text() != "draft" {
		t.Errorf("text after undo = %q, want %q", items[0].Text(), "draft")
	}
}

func TestMoveTaskItem(t *testing.T) {
	e := taskEditor(
		document.TaskEntry{Text: "a"},
		document.TaskEntry{Text: "b"},
		document.TaskEntry{Text: "c"},
	)

	if err := e.MoveTaskItem(0, 0, 2); err != nil {
		t.Fatal(err)
	}
	items := readTaskItems(t, e)
	if items[0].Text() != "b" || items[1].Text() != "c" || items[2].Text() != "a" {
		t.Fatalf("order = %q %q %q", items[0].Text(), items[1].Text(), items[2].Text())
	}

	if err := e.MoveTaskItemUp(0, 2); err != nil {
		t.Fatal(err)
	}
	items = readTaskItems(t, e)
	if items[1].Text() != "a" {
		t.Errorf("after move up, item 1 = %q, want %q", items[1].Text(), "a")
	}

	if err := e.MoveTaskItemDown(0, 1); err != nil {
		t.Fatal(err)
	}
	items = readTaskItems(t, e)
	if items[2].Text() != "a" {
		t.Errorf("after move down, item 2 = %q, want %q", items[2].Text(), "a")
	}
}

func TestIndentAndDedentTaskItem(t *testing.T) {
	e := taskEditor(
		document.TaskEntry{Text: "parent"},
		document.TaskEntry{Text: "child"},
	)

	if err := e.IndentTaskItem(0, 1); err != nil {
		t.Fatalf("IndentTaskItem: %v", err)
	}
	items := readTaskItems(t, e)
	if len(items) != 1 {
		t.Fatalf("outer items = %d, want 1", len(items))
	}
	var nested *document.List
	for _, child := range items[0].Children {
		if sub, ok := child.(*document.List); ok {
			nested = sub
		}
	}
	if nested == nil || len(nested.Items) != 1 || nested.Items[0].Text() != "child" {
		t.Fatalf("nested list = %+v", nested)
	}

	if err := e.DedentTaskItem(0, 0); err != nil {
		t.Fatalf("DedentTaskItem: %v", err)
	}
	items = readTaskItems(t, e)
	if len(items) != 2 || items[1].Text() != "child" {
		t.Errorf("items after dedent = %+v", items)
	}

	if err := e.IndentTaskItem(0, 0); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("indent first item = %v, want ErrUnsupportedOperation", err)
	}
}

func TestSortTaskList(t *testing.T) {
	e := taskEditor(
		document.TaskEntry{Text: "banana", Checked: true},
		document.TaskEntry{Text: "apple"},
		document.TaskEntry{Text: "Cherry", Checked: true},
	)

	if err := e.SortTaskList(0, SortAlphabetical); err != nil {
		t.Fatal(err)
	}
	items := readTaskItems(t, e)
	if items[0].Text() != "apple" || items[1].Text() != "banana" || items[2].Text() != "Cherry" {
		t.Fatalf("alphabetical order = %q %q %q", items[0].Text(), items[1].Text(), items[2].Text())
	}

	if err := e.SortTaskList(0, SortUncheckedFirst); err != nil {
		t.Fatal(err)
	}
	items = readTaskItems(t, e)
	if items[0].Text() != "apple" {
		t.Errorf("unchecked-first order starts with %q, want %q", items[0].Text(), "apple")
	}

	if err := e.SortTaskList(0, SortCheckedFirst); err != nil {
		t.Fatal(err)
	}
	items = readTaskItems(t, e)
	if *items[0].Checked != true || *items[1].Checked != true {
		t.Error("checked-first order should lead with checked items")
	}

	// Sorting is undoable back to the original order.
	for i := 0; i < 3; i++ {
		if err := e.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	items = readTaskItems(t, e)
	if items[0].Text() != "banana" || items[1].Text() != "apple" {
		t.Errorf("order after undo = %q %q", items[0].Text(), items[1].Text())
	}
}
