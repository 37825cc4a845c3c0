//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inkboard/inkboard/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	inkboardEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	inkboardEngine.Set("loadShapes", js.FuncOf(loadShapes))
	inkboardEngine.Set("loadSampleDrawing", js.FuncOf(loadSampleDrawing))
	inkboardEngine.Set("setSettings", js.FuncOf(setSettings))
	inkboardEngine.Set("setViewport", js.FuncOf(setViewport))
	inkboardEngine.Set("pointerDown", js.FuncOf(pointerDown))
	inkboardEngine.Set("pointerMove", js.FuncOf(pointerMove))
	inkboardEngine.Set("pointerUp", js.FuncOf(pointerUp))
	inkboardEngine.Set("keyDown", js.FuncOf(keyDown))
	inkboardEngine.Set("undo", js.FuncOf(undo))
	inkboardEngine.Set("redo", js.FuncOf(redo))

	// --- Queries (frontend ← engine) ---
	inkboardEngine.Set("render", js.FuncOf(render))
	inkboardEngine.Set("getShapes", js.FuncOf(getShapes))
	inkboardEngine.Set("getState", js.FuncOf(getState))
	inkboardEngine.Set("hitTest", js.FuncOf(hitTest))
	inkboardEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))

	js.Global().Set("inkboardEngine", inkboardEngine)
	js.Global().Set("inkboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(msg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

func okResult() js.Value {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadShapes(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing shapes JSON")
	}
	if err := eng.LoadShapes(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return okResult()
}

func loadSampleDrawing(this js.Value, args []js.Value) interface{} {
	eng.LoadSampleDrawing()
	return okResult()
}

func setSettings(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("missing settings JSON")
	}
	if err := eng.SetSettings(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return okResult()
}

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetViewport(args[0].Float(), args[1].Float())
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	clicks := 1
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		clicks = args[2].Int()
	}
	eng.PointerDown(args[0].Float(), args[1].Float(), clicks)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerUp(args[0].Float(), args[1].Float())
	return nil
}

// keyDown takes a JSON-encoded KeyboardEvent subset and returns whether the
// engine consumed it, so the caller knows to preventDefault.
func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	var ev engine.KeyEvent
	if err := json.Unmarshal([]byte(args[0].String()), &ev); err != nil {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.KeyDown(ev))
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func getShapes(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetShapes())
}

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetState())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(-1)
	}
	return js.ValueOf(float64(eng.HitTest(args[0].Float(), args[1].Float())))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}
