package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/mdedit/document"
	"github.com/dshills/mdedit/edit"
)

func newEngine(t *testing.T, texts ...string) *Engine {
	t.Helper()
	b := document.NewBuilder()
	for _, text := range texts {
		b.Paragraph(text)
	}
	e := New(edit.New(edit.WithDocument(b.Build())))
	t.Cleanup(e.Close)
	return e
}

func TestMacroDrivesEditor(t *testing.T) {
	e := newEngine(t, "seed")

	src := `
local ed = require("mdedit")
ed.insert_paragraph(2, "from lua")
if ed.node_count() ~= 2 then error("count " .. ed.node_count()) end
if ed.node_text(2) ~= "from lua" then error("text " .. ed.node_text(2)) end
`
	if err := e.RunString(src); err != nil {
		t.Fatalf("RunString: %v", err)
	}

	e.Editor().Read(func(d *document.Document) {
		if d.NodeCount() != 2 {
			t.Errorf("node count = %d, want 2", d.NodeCount())
		}
	})
}

func TestMacroFindReplaceReturnsCount(t *testing.T) {
	e := newEngine(t, "foo bar foo")

	src := `
local ed = require("mdedit")
local n = ed.find_replace("foo", "baz", true)
if n ~= 2 then error("count " .. n) end
`
	if err := e.RunString(src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func TestMacroUndo(t *testing.T) {
	e := newEngine(t, "seed")

	src := `
local ed = require("mdedit")
ed.insert_paragraph(2, "extra")
ed.undo()
if ed.node_count() ~= 1 then error("undo did not take") end
if not ed.can_redo() then error("redo should be available") end
`
	if err := e.RunString(src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if !e.Editor().CanRedo() {
		t.Error("editor should report a redoable command")
	}
}

func TestMacroSelection(t *testing.T) {
	e := newEngine(t, "Hello, world!")

	src := `
local ed = require("mdedit")
ed.select_text_range(1, 8, 13)
if ed.selected_text() ~= "world" then error("got " .. ed.selected_text()) end
local cut = ed.cut_selection()
if cut ~= "world" then error("cut " .. cut) end
if ed.node_text(1) ~= "Hello, !" then error("left " .. ed.node_text(1)) end
`
	if err := e.RunString(src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func TestMacroSerializers(t *testing.T) {
	e := newEngine(t, "body")

	src := `
local ed = require("mdedit")
if ed.to_markdown() ~= "body" then error("md " .. ed.to_markdown()) end
if ed.to_html() ~= "<p>body</p>" then error("html " .. ed.to_html()) end
if string.find(ed.to_json(), '"type":"paragraph"', 1, true) == nil then
	error("json missing paragraph")
end
`
	if err := e.RunString(src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func TestPrintRedirect(t *testing.T) {
	var buf bytes.Buffer
	b := document.NewBuilder()
	e := New(edit.New(edit.WithDocument(b.Build())), WithOutput(&buf))
	defer e.Close()

	if err := e.RunString(`print("hello", 42)`); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "hello\t42\n" {
		t.Errorf("output = %q, want %q", got, "hello\t42\n")
	}
}

func TestRestrictedSandbox(t *testing.T) {
	e := newEngine(t)

	src := `
if dofile ~= nil then error("dofile available") end
if loadfile ~= nil then error("loadfile available") end
if load ~= nil then error("load available") end
if os ~= nil then error("os available") end
if io ~= nil then error("io available") end
if package.path ~= "" then error("package.path set") end
`
	if err := e.RunString(src); err != nil {
		t.Fatalf("sandbox leak: %v", err)
	}
}

func TestFullLibraries(t *testing.T) {
	e := New(edit.New(), WithFullLibraries())
	defer e.Close()

	if err := e.RunString(`if os == nil then error("os missing") end`); err != nil {
		t.Fatalf("RunString: %v", err)
	}
}

func TestMacroErrorSurfaces(t *testing.T) {
	e := newEngine(t, "seed")

	err := e.RunString(`local ed = require("mdedit") ed.delete_node(99)`)
	if err == nil {
		t.Fatal("expected an error from an out-of-range delete")
	}
	if !strings.Contains(err.Error(), "macro failed") {
		t.Errorf("error = %v, want macro failure wrap", err)
	}
	// The failed command must not have touched the document.
	e.Editor().Read(func(d *document.Document) {
		if d.NodeCount() != 1 {
			t.Errorf("node count = %d, want 1", d.NodeCount())
		}
	})
}

func TestMacroCanRecoverWithPcall(t *testing.T) {
	e := newEngine(t, "seed")

	src := `
local ed = require("mdedit")
local ok = pcall(function() ed.delete_node(99) end)
if ok then error("delete should have failed") end
ed.insert_paragraph(2, "recovered")
`
	if err := e.RunString(src); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	e.Editor().Read(func(d *document.Document) {
		if d.NodeCount() != 2 {
			t.Errorf("node count = %d, want 2", d.NodeCount())
		}
	})
}

func TestClosedEngine(t *testing.T) {
	e := New(edit.New())
	e.Close()

	if err := e.RunString(`return 1`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("error = %v, want ErrEngineClosed", err)
	}
	// Closing twice is fine.
	e.Close()
}
