// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js && wasm

// Command outlineweb draws the outlined cube on the page's canvas element
// with id "canvas". Build with GOOS=js GOARCH=wasm.
package main

import (
	"context"
	"log"
	"syscall/js"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/backend/webgl"
	"github.com/gogpu/outline/camera"
	"github.com/gogpu/outline/config"
	"github.com/gogpu/outline/gl"
)

func main() {
	cfg := config.Default()
	orbit := camera.New(camera.Options{
		Distance: cfg.Camera.Distance,
		Min:      cfg.Camera.Min,
		Max:      cfg.Camera.Max,
		Move:     cfg.Camera.Move,
	})
	r := outline.New(webgl.New(), nil, outline.WithConfig(cfg), outline.WithCamera(orbit))
	ready, err := r.Run(context.Background(), gl.Named(cfg.Surface.Name), cfg.Shaders.Paths())
	if err != nil {
		log.Fatal(err)
	}
	el := ready.Manager.Surface().(*webgl.Canvas).Element()
	bindInput(el, orbit)

	var frame js.Func
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		if err := r.Tick(); err != nil {
			log.Print(err)
			frame.Release()
			return nil
		}
		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)
	select {}
}

func bindInput(el js.Value, orbit *camera.Orbit) {
	pointer := func(ev js.Value) (float32, float32) {
		return camera.Normalize(ev.Get("clientX").Float(), ev.Get("clientY").Float(),
			el.Get("clientWidth").Int(), el.Get("clientHeight").Int())
	}
	on := func(name string, fn func(js.Value)) {
		el.Call("addEventListener", name, js.FuncOf(func(_ js.Value, args []js.Value) any {
			fn(args[0])
			return nil
		}))
	}
	on("pointerdown", func(ev js.Value) { orbit.PointerDown(pointer(ev)) })
	on("pointermove", func(ev js.Value) { orbit.PointerMove(pointer(ev)) })
	on("pointerup", func(js.Value) { orbit.PointerUp() })
	on("wheel", func(ev js.Value) {
		ev.Call("preventDefault")
		orbit.Wheel(float32(ev.Get("deltaY").Float() / 100))
	})
}
