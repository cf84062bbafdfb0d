// Package noctilucence is a procedural 2D animation engine for metrology
// illustrations: dial indicators sweeping uneven surfaces, flatness zones
// rolling around measured traces, dimension callouts drawing themselves in.
//
// # Scene and replay
//
// Every visual element is an [Entity]. Entities form trees; children inherit
// their parent's coordinate frame and multiply into its opacity. A [Scene]
// owns registered entities and a sparse script of per-frame [Instruction]
// values, and renders by deterministic replay: entity state at frame N is a
// pure function of the frame-0 snapshots and the script. Seeking backward
// resets and replays, trading speed for reproducibility.
//
//	scene := noctilucence.NewScene(noctilucence.SceneConfig{
//		Resolution: 272, FPS: 60,
//		Backend: raster.New(),
//	})
//	disk := noctilucence.NewDisk(1.0)
//	scene.Register("disk", disk)
//
// The animation builders convert seconds into scripted frames:
//
//	noctilucence.Pause(scene, 0.5)
//	noctilucence.Slide(scene, 1, "disk", noctilucence.Vec3{X: 1, Y: 0.5},
//		noctilucence.Sigmoid, -1)
//	frames, err := scene.Frames(0, -1)
//
// # Geometry kernel
//
// The kernel under the entities is exported directly: [Span] profiles a
// transition between two values with exact endpoints, [MinZoneFlatness]
// rolls two parallel support lines around a point set, [RayPolygonDistance]
// probes a polygon along a ray, and [JaggedSamples] roughens a contour
// deterministically from a seed.
//
// # Backends
//
// Rasterization goes through the [Backend] interface; raster implements it
// in pure Go on golang.org/x/image, video writes frame batches to PNG
// sequences or animated GIF, and preview plays a scene live in an Ebitengine
// window.
package noctilucence
