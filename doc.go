// Package billow is a pseudo-3D billboard renderer for [Ebitengine].
//
// A billboard is a flat, screen-facing sprite standing in a 3D world. Each
// frame billow projects every billboard through a perspective camera, sorts
// them back to front and draws them as scaled 2D images over a sky and a
// ground band. There is no depth buffer; painter's order is the only
// occlusion.
//
// # Quick start
//
//	scene, err := billow.NewScene(billow.DefaultSceneConfig(800, 600))
//	if err != nil {
//		log.Fatal(err)
//	}
//	bush := billow.NewTemplate("bush", 1.0, 0.58, bushImage)
//	scene.AddBillboard(billow.NewBillboard("bush", bush, billow.CornersFour, mgl64.Vec3{2, 6, 0}))
//	if err := billow.Run(scene, billow.RunConfig{Title: "Meadow"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # World coordinates
//
// Positions are [mgl64.Vec3] values. The camera's up axis is +Z and the
// default camera looks along +Y. A billboard's position is the middle of its
// bottom edge; its top edge sits at Z minus the template height, so objects
// standing on the ground (Z = [SceneConfig].GroundLevel) extend toward
// negative Z.
//
// # Templates and billboards
//
// A [Template] is the shared visual definition: a sprite image and a world
// width and height. Many billboards share one template. A [Billboard] adds a
// position and derives its world corners from it; [CornersFour] averages all
// four projected corners to place the sprite, [CornersDiagonal] uses only the
// top-left and bottom-right corners.
//
// # Frames
//
// [Scene.Update] reads the keyboard, moves the player and the camera by the
// same offset, advances camera glides and particle fields, and runs the
// update hook. [Scene.Draw] fills the sky, draws the ground band, projects
// and sorts the active billboards (farthest first, ties in insertion order)
// and draws every billboard whose normalized depth is at most 1. Billboards
// whose projection is singular are skipped for that frame.
//
// # Particles
//
// [Scene.AddParticles] creates a fixed batch of billboards driven by a
// gravity or orbit motion. Particles are repositioned, never reallocated.
//
// # Layouts and assets
//
// [Assets] registers sprite images (PNG, BMP and WebP are decoded).
// [LoadLayout] parses a JSON scene description that [Scene.ApplyLayout]
// resolves against an Assets registry.
//
// # Logging
//
// billow is silent by default. Call [SetLogger] with a [log/slog] logger to
// see setup records and, in debug mode, per-frame stats.
//
// # Scripted runs
//
// [LoadTestScript] parses a JSON list of key presses, holds, waits and
// screenshots; attach it with [Scene.SetTestRunner] to drive a scene without
// a keyboard.
//
// [Ebitengine]: https://ebitengine.org
package billow
