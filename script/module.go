package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mdedit/convert"
	"github.com/dshills/mdedit/document"
	"github.com/dshills/mdedit/edit"
)

// moduleLoader builds the mdedit module table. Node, offset and item
// arguments follow Lua convention and are 1-based; they are translated at
// the boundary. Editor errors become Lua errors, so macros can wrap calls
// in pcall to handle failures.
func (e *Engine) moduleLoader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"insert_text":       e.luaInsertText,
		"delete_text":       e.luaDeleteText,
		"format_text":       e.luaFormatText,
		"insert_paragraph":  e.luaInsertParagraph,
		"insert_heading":    e.luaInsertHeading,
		"insert_code_block": e.luaInsertCodeBlock,
		"delete_node":       e.luaDeleteNode,
		"move_node":         e.luaMoveNode,
		"duplicate_node":    e.luaDuplicateNode,
		"merge_nodes":       e.luaMergeNodes,
		"group_nodes":       e.luaGroupNodes,
		"ungroup_nodes":     e.luaUngroupNodes,

		"add_task_item":    e.luaAddTaskItem,
		"remove_task_item": e.luaRemoveTaskItem,
		"edit_task_item":   e.luaEditTaskItem,
		"toggle_task":      e.luaToggleTask,
		"sort_task_list":   e.luaSortTaskList,

		"create_table": e.luaCreateTable,
		"create_toc":   e.luaCreateTOC,
		"find_replace": e.luaFindReplace,

		"undo":          e.luaUndo,
		"redo":          e.luaRedo,
		"can_undo":      e.luaCanUndo,
		"can_redo":      e.luaCanRedo,
		"undo_depth":    e.luaUndoDepth,
		"redo_depth":    e.luaRedoDepth,
		"clear_history": e.luaClearHistory,

		"select_all":        e.luaSelectAll,
		"select_node":       e.luaSelectNode,
		"select_text_range": e.luaSelectTextRange,
		"clear_selection":   e.luaClearSelection,
		"selected_text":     e.luaSelectedText,
		"cut_selection":     e.luaCutSelection,
		"copy_selection":    e.luaCopySelection,
		"format_selection":  e.luaFormatSelection,

		"node_count":  e.luaNodeCount,
		"node_text":   e.luaNodeText,
		"to_markdown": e.luaToMarkdown,
		"to_json":     e.luaToJSON,
		"to_html":     e.luaToHTML,
	})
	L.Push(mod)
	return 1
}

// raise converts a Go error into a Lua error. Never returns normally when
// err is non-nil.
func raise(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

// formattingArg reads a formatting table ({bold=, italic=, strikethrough=,
// code=}) from the given stack position.
func formattingArg(L *lua.LState, pos int) document.Formatting {
	t := L.CheckTable(pos)
	var f document.Formatting
	if lua.LVAsBool(t.RawGetString("bold")) {
		f.Bold = true
	}
	if lua.LVAsBool(t.RawGetString("italic")) {
		f.Italic = true
	}
	if lua.LVAsBool(t.RawGetString("strikethrough")) {
		f.Strikethrough = true
	}
	if lua.LVAsBool(t.RawGetString("code")) {
		f.Code = true
	}
	return f
}

func (e *Engine) luaInsertText(L *lua.LState) int {
	node := L.CheckInt(1) - 1
	offset := L.CheckInt(2) - 1
	text := L.CheckString(3)
	raise(L, e.editor.InsertText(node, offset, text))
	return 0
}

func (e *Engine) luaDeleteText(L *lua.LState) int {
	node := L.CheckInt(1) - 1
	start := L.CheckInt(2) - 1
	end := L.CheckInt(3) - 1
	raise(L, e.editor.DeleteText(node, start, end))
	return 0
}

func (e *Engine) luaFormatText(L *lua.LState) int {
	node := L.CheckInt(1) - 1
	start := L.CheckInt(2) - 1
	end := L.CheckInt(3) - 1
	format := formattingArg(L, 4)
	raise(L, e.editor.FormatText(node, start, end, format))
	return 0
}

func (e *Engine) luaInsertParagraph(L *lua.LState) int {
	pos := L.CheckInt(1) - 1
	text := L.CheckString(2)
	raise(L, e.editor.InsertParagraph(pos, text))
	return 0
}

func (e *Engine) luaInsertHeading(L *lua.LState) int {
	pos := L.CheckInt(1) - 1
	level := L.CheckInt(2)
	text := L.CheckString(3)
	raise(L, e.editor.InsertHeading(pos, level, text))
	return 0
}

func (e *Engine) luaInsertCodeBlock(L *lua.LState) int {
	pos := L.CheckInt(1) - 1
	code := L.CheckString(2)
	language := L.OptString(3, "")
	raise(L, e.editor.InsertCodeBlock(pos, code, language))
	return 0
}

func (e *Engine) luaDeleteNode(L *lua.LState) int {
	raise(L, e.editor.DeleteNode(L.CheckInt(1)-1))
	return 0
}

func (e *Engine) luaMoveNode(L *lua.LState) int {
	raise(L, e.editor.MoveNode(L.CheckInt(1)-1, L.CheckInt(2)-1))
	return 0
}

func (e *Engine) luaDuplicateNode(L *lua.LState) int {
	raise(L, e.editor.DuplicateNode(L.CheckInt(1)-1))
	return 0
}

func (e *Engine) luaMergeNodes(L *lua.LState) int {
	raise(L, e.editor.MergeNodes(L.CheckInt(1)-1, L.CheckInt(2)-1))
	return 0
}

func (e *Engine) luaGroupNodes(L *lua.LState) int {
	name := L.CheckString(1)
	t := L.CheckTable(2)
	var indices []int
	t.ForEach(func(_, v lua.LValue) {
		if n, ok := v.(lua.LNumber); ok {
			indices = append(indices, int(n)-1)
		}
	})
	raise(L, e.editor.GroupNodes(name, indices))
	return 0
}

func (e *Engine) luaUngroupNodes(L *lua.LState) int {
	raise(L, e.editor.UngroupNodes(L.CheckInt(1)-1))
	return 0
}

func (e *Engine) luaAddTaskItem(L *lua.LState) int {
	list := L.CheckInt(1) - 1
	item := L.CheckInt(2) - 1
	text := L.CheckString(3)
	checked := L.OptBool(4, false)
	raise(L, e.editor.AddTaskItem(list, item, text, checked))
	return 0
}

func (e *Engine) luaRemoveTaskItem(L *lua.LState) int {
	raise(L, e.editor.RemoveTaskItem(L.CheckInt(1)-1, L.CheckInt(2)-1))
	return 0
}

func (e *Engine) luaEditTaskItem(L *lua.LState) int {
	raise(L, e.editor.EditTaskItem(L.CheckInt(1)-1, L.CheckInt(2)-1, L.CheckString(3)))
	return 0
}

func (e *Engine) luaToggleTask(L *lua.LState) int {
	raise(L, e.editor.ToggleTask(L.CheckInt(1)-1, L.CheckInt(2)-1))
	return 0
}

func (e *Engine) luaSortTaskList(L *lua.LState) int {
	list := L.CheckInt(1) - 1
	var criteria edit.SortCriteria
	switch name := L.CheckString(2); name {
	case "alphabetical":
		criteria = edit.SortAlphabetical
	case "unchecked_first":
		criteria = edit.SortUncheckedFirst
	case "checked_first":
		criteria = edit.SortCheckedFirst
	default:
		L.RaiseError("unknown sort criteria %q", name)
		return 0
	}
	raise(L, e.editor.SortTaskList(list, criteria))
	return 0
}

func (e *Engine) luaCreateTable(L *lua.LState) int {
	pos := L.CheckInt(1) - 1
	columns := L.CheckInt(2)
	rows := L.CheckInt(3)
	withHeader := L.OptBool(4, true)
	raise(L, e.editor.CreateTable(pos, columns, rows, withHeader))
	return 0
}

func (e *Engine) luaCreateTOC(L *lua.LState) int {
	pos := L.CheckInt(1) - 1
	maxLevel := L.OptInt(2, 6)
	raise(L, e.editor.CreateTOC(pos, maxLevel))
	return 0
}

func (e *Engine) luaFindReplace(L *lua.LState) int {
	find := L.CheckString(1)
	replace := L.CheckString(2)
	caseSensitive := L.OptBool(3, true)
	count, err := e.editor.FindReplace(find, replace, caseSensitive)
	raise(L, err)
	L.Push(lua.LNumber(count))
	return 1
}

func (e *Engine) luaUndo(L *lua.LState) int {
	raise(L, e.editor.Undo())
	return 0
}

func (e *Engine) luaRedo(L *lua.LState) int {
	raise(L, e.editor.Redo())
	return 0
}

func (e *Engine) luaCanUndo(L *lua.LState) int {
	L.Push(lua.LBool(e.editor.CanUndo()))
	return 1
}

func (e *Engine) luaCanRedo(L *lua.LState) int {
	L.Push(lua.LBool(e.editor.CanRedo()))
	return 1
}

func (e *Engine) luaUndoDepth(L *lua.LState) int {
	L.Push(lua.LNumber(e.editor.UndoDepth()))
	return 1
}

func (e *Engine) luaRedoDepth(L *lua.LState) int {
	L.Push(lua.LNumber(e.editor.RedoDepth()))
	return 1
}

func (e *Engine) luaClearHistory(L *lua.LState) int {
	e.editor.ClearHistory()
	return 0
}

func (e *Engine) luaSelectAll(L *lua.LState) int {
	raise(L, e.editor.SelectAll())
	return 0
}

func (e *Engine) luaSelectNode(L *lua.LState) int {
	raise(L, e.editor.SelectNode(L.CheckInt(1)-1))
	return 0
}

func (e *Engine) luaSelectTextRange(L *lua.LState) int {
	node := L.CheckInt(1) - 1
	start := L.CheckInt(2) - 1
	end := L.CheckInt(3) - 1
	raise(L, e.editor.SelectTextRange(node, start, end))
	return 0
}

func (e *Engine) luaClearSelection(L *lua.LState) int {
	e.editor.ClearSelection()
	return 0
}

func (e *Engine) luaSelectedText(L *lua.LState) int {
	L.Push(lua.LString(e.editor.SelectedText()))
	return 1
}

func (e *Engine) luaCutSelection(L *lua.LState) int {
	text, err := e.editor.CutSelection()
	raise(L, err)
	L.Push(lua.LString(text))
	return 1
}

func (e *Engine) luaCopySelection(L *lua.LState) int {
	text, err := e.editor.CopySelection()
	raise(L, err)
	L.Push(lua.LString(text))
	return 1
}

func (e *Engine) luaFormatSelection(L *lua.LState) int {
	raise(L, e.editor.FormatSelection(formattingArg(L, 1)))
	return 0
}

func (e *Engine) luaNodeCount(L *lua.LState) int {
	count := 0
	e.editor.Read(func(d *document.Document) {
		count = d.NodeCount()
	})
	L.Push(lua.LNumber(count))
	return 1
}

func (e *Engine) luaNodeText(L *lua.LState) int {
	index := L.CheckInt(1) - 1
	text := ""
	found := false
	e.editor.Read(func(d *document.Document) {
		if d.ValidIndex(index) {
			text, found = document.NodeText(d.Nodes[index])
		}
	})
	if !found {
		L.RaiseError("node %d has no text", index+1)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

func (e *Engine) luaToMarkdown(L *lua.LState) int {
	return e.serialize(L, convert.ToMarkdown)
}

func (e *Engine) luaToJSON(L *lua.LState) int {
	return e.serialize(L, convert.ToJSON)
}

func (e *Engine) luaToHTML(L *lua.LState) int {
	return e.serialize(L, convert.ToHTML)
}

func (e *Engine) serialize(L *lua.LState, fn func(*document.Document) (string, error)) int {
	var out string
	var err error
	e.editor.Read(func(d *document.Document) {
		out, err = fn(d)
	})
	raise(L, err)
	L.Push(lua.LString(out))
	return 1
}
